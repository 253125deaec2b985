package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante/src/shared/domain/session"
)

const detalleJSON = `{
	"idventa": 10,
	"totalventa": 13.50,
	"fechaventa": "2026-08-30",
	"idReserva": 5,
	"clienteInfo": {"idcliente": 100, "nombrecliente": "Ana", "apellidocliente": "Torres"},
	"empleadoAtiende": {"idEmpleado": 3, "nombre": "Marcos", "puesto": "Mesero"},
	"productosVendidos": [
		{"idProducto": 1, "nombreProducto": "Tacos", "precioUnitario": 5.00, "cantidad": 2, "subtotal": 10.00},
		{"idProducto": 2, "nombreProducto": "Agua", "precioUnitario": 3.50, "cantidad": 1, "subtotal": 3.50}
	],
	"reservaInfo": {"idMesa": 4, "numeroMesa": 12, "capacidadMesa": 6, "ubicacion": "Terraza", "fechaReserva": "2026-08-30", "horaReserva": "20:00"}
}`

func nuevoCliente(t *testing.T, handler http.HandlerFunc) (*VentasClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewVentasClient(srv.URL, 2*time.Second), srv
}

func TestDetalleCompleto_MapeaRespuestaConsolidada(t *testing.T) {
	var gotPath, gotAuth string
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(detalleJSON))
	})

	sess := session.Context{AuthToken: "Bearer abc"}
	detalle, err := cli.DetalleCompleto(context.Background(), sess, 10)
	require.NoError(t, err)

	assert.Equal(t, "/api/ventas/detallecompleto/10", gotPath)
	assert.Equal(t, "Bearer abc", gotAuth)

	assert.Equal(t, 10, detalle.IDVenta)
	assert.True(t, decimal.NewFromFloat(13.50).Equal(detalle.Total))
	assert.Equal(t, "2026-08-30", detalle.Fecha)

	require.NotNil(t, detalle.Cliente)
	assert.Equal(t, "Ana Torres", detalle.Cliente.NombreCompleto)

	require.NotNil(t, detalle.Empleado)
	assert.Equal(t, "Mesero", detalle.Empleado.Puesto)

	require.Len(t, detalle.Productos, 2)
	assert.True(t, decimal.NewFromFloat(10.00).Equal(detalle.Productos[0].Subtotal))
	assert.True(t, decimal.NewFromFloat(3.50).Equal(detalle.Productos[1].Subtotal))

	// El bloque de reserva viene anidado en la misma respuesta: cero
	// requests adicionales
	require.NotNil(t, detalle.Reserva)
	assert.Equal(t, 5, detalle.Reserva.IDReserva)
	assert.Equal(t, 12, detalle.Reserva.NumeroMesa)
	assert.Equal(t, "Terraza", detalle.Reserva.Ubicacion)
}

func TestDetalleCompleto_SinReserva(t *testing.T) {
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"idventa": 11, "totalventa": 5, "fechaventa": "2026-08-30", "idReserva": null}`))
	})

	detalle, err := cli.DetalleCompleto(context.Background(), session.Context{}, 11)
	require.NoError(t, err)
	assert.Nil(t, detalle.IDReserva)
	assert.Nil(t, detalle.Reserva)
	assert.Nil(t, detalle.Cliente)
}

func TestAtendidas_204EsResultadoVacio(t *testing.T) {
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ventas/atendidas/3", r.URL.Path)
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("fecha"))
		w.WriteHeader(http.StatusNoContent)
	})

	ventas, err := cli.AtendidasPorEmpleado(context.Background(), session.Context{}, 3, "2026-08-30")
	require.NoError(t, err, "204 es vacío, no error")
	assert.Empty(t, ventas)
	assert.NotNil(t, ventas)
}

func TestListarTodas_FiltraPorReservaDelLadoDelCaller(t *testing.T) {
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"idventa": 1, "totalventa": 20, "fechaventa": "2026-08-30", "estado": "pagada", "idCliente": 9, "idReserva": 5},
			{"idventa": 2, "totalventa": 15, "fechaventa": "2026-08-30", "estado": "pendiente", "idCliente": 8, "idReserva": null}
		]`))
	})

	ventas, err := cli.ListarTodas(context.Background(), session.Context{})
	require.NoError(t, err)
	require.Len(t, ventas, 2)

	require.NotNil(t, ventas[0].IDReserva)
	assert.Equal(t, 5, *ventas[0].IDReserva)
	assert.Nil(t, ventas[1].IDReserva)
	assert.Equal(t, "pagada", ventas[0].Estado)
}

func TestListarPorFecha_QueryOpcional(t *testing.T) {
	var gotURL string
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`[]`))
	})

	_, err := cli.ListarPorFecha(context.Background(), session.Context{}, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "/api/ventas/listaf?fecha=2026-08-30", gotURL)

	// Sin fecha no se manda el parámetro
	_, err = cli.ListarPorFecha(context.Background(), session.Context{}, "")
	require.NoError(t, err)
	assert.Equal(t, "/api/ventas/listaf", gotURL)
}

func TestActualizarEstado_EnviaBody(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	})

	err := cli.ActualizarEstado(context.Background(), session.Context{}, 7, "cancelada")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/ventas/actualizar/7", gotPath)
	assert.JSONEq(t, `{"estado":"cancelada"}`, gotBody)
}

func TestDescargarTicket_DevuelveBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 ticket")
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ventas/ticket/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	})

	datos, err := cli.DescargarTicket(context.Background(), session.Context{}, 42)
	require.NoError(t, err)
	assert.Equal(t, pdf, datos)
}

func TestErroresDelBackendIncluyenStatusYBody(t *testing.T) {
	cli, _ := nuevoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := cli.DetalleCompleto(context.Background(), session.Context{}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}
