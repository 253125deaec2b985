package entity

import (
	"github.com/shopspring/decimal"
)

// Modos de resolución del contexto de detalle
const (
	ModoVenta   = "venta"   // el id recibido es directamente un id de venta
	ModoReserva = "reserva" // el id es de una reserva que puede agrupar varias ventas
)

// EtiquetaNoEncontrada es el placeholder que sustituye al nombre del cliente
// cuando su lookup falla durante la resolución de candidatas.
const EtiquetaNoEncontrada = "(not found)"

// SaleSummary es la fila de venta que devuelve el listado del backend.
// Suficiente para filtrar por reserva y resolver etiquetas; el detalle
// completo se pide aparte en un solo round trip.
type SaleSummary struct {
	IDVenta   int
	Total     decimal.Decimal
	Fecha     string
	Estado    string
	IDCliente int
	IDReserva *int // nil cuando la venta no está ligada a una reserva
}

// ClientInfo datos del cliente dueño de la venta
type ClientInfo struct {
	IDCliente      int
	NombreCompleto string
}

// EmployeeInfo datos del mesero que atendió la venta
type EmployeeInfo struct {
	IDEmpleado int
	Nombre     string
	Puesto     string
}

// LineItem línea de producto vendido
type LineItem struct {
	IDProducto     int
	NombreProducto string
	PrecioUnitario decimal.Decimal
	Cantidad       int
	Subtotal       decimal.Decimal
}

// ReservationInfo datos de la reserva y mesa ligadas a la venta
type ReservationInfo struct {
	IDReserva     int
	NumeroMesa    int
	CapacidadMesa int
	Ubicacion     string
	Fecha         string
	Hora          string
}

// SaleDetail registro consolidado de una venta.
// Los totales son autoritativos del backend: nunca se recalculan aquí.
type SaleDetail struct {
	IDVenta   int
	Total     decimal.Decimal
	Fecha     string
	IDReserva *int
	Cliente   *ClientInfo
	Empleado  *EmployeeInfo
	Productos []LineItem
	Reserva   *ReservationInfo
}

// CandidateSale una venta candidata bajo una reserva, con su etiqueta resuelta
type CandidateSale struct {
	IDVenta  int
	Etiqueta string
}

// SaleContext estado de trabajo del agregador de detalle.
// Se crea fresco por cada navegación a la vista y se descarta al salir.
type SaleContext struct {
	Modo        string
	RequestedID int
	Candidatas  []CandidateSale // solo en modo reserva con más de una coincidencia
	Selected    *int
}

// HasCandidate indica si un id de venta pertenece a la lista de candidatas
func (c *SaleContext) HasCandidate(idVenta int) bool {
	for _, cand := range c.Candidatas {
		if cand.IDVenta == idVenta {
			return true
		}
	}
	return false
}

// LineItemUpdate línea para el reemplazo completo de items de una venta
type LineItemUpdate struct {
	IDProducto int
	Cantidad   int
}
