package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"restaurante/src/ventas/domain/entity"
)

func TestDisplayTotal(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(DisplayTotal(nil)))

	d := &entity.SaleDetail{Total: decimal.NewFromFloat(13.50)}
	assert.True(t, decimal.NewFromFloat(13.50).Equal(DisplayTotal(d)))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "N/A", DisplayDate(nil))
	assert.Equal(t, "N/A", DisplayDate(&entity.SaleDetail{}))
	assert.Equal(t, "2026-08-30", DisplayDate(&entity.SaleDetail{Fecha: "2026-08-30"}))
}

func TestReservaDisplayTransform_Deshabilitado(t *testing.T) {
	tr := ReservaDisplayTransform{Enabled: false, Days: 2, Hours: -6}

	fecha, hora := tr.Apply("2026-05-10", "04:00")
	assert.Equal(t, "2026-05-10", fecha)
	assert.Equal(t, "04:00", hora)
}

func TestReservaDisplayTransform_Habilitado(t *testing.T) {
	tr := ReservaDisplayTransform{Enabled: true, Days: 2, Hours: -6}

	// 10 04:00 + 2d = 12 04:00; -6h = 11 22:00
	fecha, hora := tr.Apply("2026-05-10", "04:00")
	assert.Equal(t, "2026-05-11", fecha)
	assert.Equal(t, "22:00", hora)

	// Cruce de mes
	fecha, hora = tr.Apply("2026-05-30", "12:00")
	assert.Equal(t, "2026-06-01", fecha)
	assert.Equal(t, "06:00", hora)
}

func TestReservaDisplayTransform_EntradaNoParseable(t *testing.T) {
	tr := ReservaDisplayTransform{Enabled: true, Days: 2, Hours: -6}

	// Valores que no parsean se devuelven intactos
	fecha, hora := tr.Apply("mañana", "tarde")
	assert.Equal(t, "mañana", fecha)
	assert.Equal(t, "tarde", hora)
}
