package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"restaurante/src/ventas/domain/entity"
)

// Campos derivados de display: funciones puras sobre SaleDetail,
// recalculadas en cada render, sin cache.

// DisplayTotal total a mostrar; cero cuando no hay detalle cargado
func DisplayTotal(d *entity.SaleDetail) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Total
}

// DisplayDate fecha a mostrar; "N/A" cuando no hay detalle o fecha
func DisplayDate(d *entity.SaleDetail) string {
	if d == nil || d.Fecha == "" {
		return "N/A"
	}
	return d.Fecha
}

// ReservaDisplayTransform ajuste cosmético opcional de fecha/hora de reserva.
// Es un parche de zona horaria (+2 días, -6 horas), no regla de negocio.
// Deshabilitado por defecto para poder retirarlo cuando el backend corrija
// el almacenamiento.
type ReservaDisplayTransform struct {
	Enabled bool
	Days    int
	Hours   int
}

// Apply ajusta fecha (YYYY-MM-DD) y hora (HH:MM) de reserva para display.
// Si el transform está deshabilitado o los valores no parsean, devuelve
// los originales sin tocar.
func (t ReservaDisplayTransform) Apply(fecha, hora string) (string, string) {
	if !t.Enabled {
		return fecha, hora
	}

	ts, err := time.Parse("2006-01-02 15:04", fecha+" "+hora)
	if err != nil {
		return fecha, hora
	}

	ts = ts.AddDate(0, 0, t.Days).Add(time.Duration(t.Hours) * time.Hour)
	return ts.Format("2006-01-02"), ts.Format("15:04")
}
