package response

import (
	"github.com/shopspring/decimal"

	"restaurante/src/ventas/domain/entity"
)

// Perfil de visibilidad: un solo agregador sirve la vista de staff y la de
// cliente; la diferencia es únicamente qué campos se proyectan aquí.
type Perfil string

const (
	PerfilStaff   Perfil = "staff"
	PerfilCliente Perfil = "cliente"
)

// ParsePerfil interpreta el query param de perfil; staff por defecto
func ParsePerfil(raw string) Perfil {
	if raw == string(PerfilCliente) {
		return PerfilCliente
	}
	return PerfilStaff
}

// LineItemResponse línea de producto para display
type LineItemResponse struct {
	IDProducto     int             `json:"id_producto"`
	NombreProducto string          `json:"nombre_producto"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// EmpleadoResponse datos del mesero; solo visible para el perfil staff
type EmpleadoResponse struct {
	IDEmpleado int    `json:"id_empleado"`
	Nombre     string `json:"nombre"`
	Puesto     string `json:"puesto"`
}

// ReservaResponse datos de reserva/mesa para display
type ReservaResponse struct {
	IDReserva     int    `json:"id_reserva"`
	NumeroMesa    int    `json:"numero_mesa"`
	CapacidadMesa int    `json:"capacidad_mesa"`
	Ubicacion     string `json:"ubicacion"`
	Fecha         string `json:"fecha"`
	Hora          string `json:"hora"`
}

// DetalleVentaResponse detalle consolidado proyectado según perfil
type DetalleVentaResponse struct {
	IDVenta       int                `json:"id_venta"`
	Total         decimal.Decimal    `json:"total"`
	Fecha         string             `json:"fecha"`
	NombreCliente string             `json:"nombre_cliente,omitempty"`
	Empleado      *EmpleadoResponse  `json:"empleado,omitempty"`
	Productos     []LineItemResponse `json:"productos"`
	Reserva       *ReservaResponse   `json:"reserva,omitempty"`
}

// CandidataResponse venta candidata para el selector de la vista
type CandidataResponse struct {
	IDVenta  int    `json:"id_venta"`
	Etiqueta string `json:"etiqueta"`
}

// FromDetail proyecta el detalle según el perfil de visibilidad.
// El perfil cliente redacta la información del empleado que atendió.
func FromDetail(d *entity.SaleDetail, perfil Perfil) *DetalleVentaResponse {
	if d == nil {
		return nil
	}

	resp := &DetalleVentaResponse{
		IDVenta:   d.IDVenta,
		Total:     d.Total,
		Fecha:     d.Fecha,
		Productos: make([]LineItemResponse, 0, len(d.Productos)),
	}

	if d.Cliente != nil {
		resp.NombreCliente = d.Cliente.NombreCompleto
	}

	if perfil == PerfilStaff && d.Empleado != nil {
		resp.Empleado = &EmpleadoResponse{
			IDEmpleado: d.Empleado.IDEmpleado,
			Nombre:     d.Empleado.Nombre,
			Puesto:     d.Empleado.Puesto,
		}
	}

	for _, item := range d.Productos {
		resp.Productos = append(resp.Productos, LineItemResponse{
			IDProducto:     item.IDProducto,
			NombreProducto: item.NombreProducto,
			PrecioUnitario: item.PrecioUnitario,
			Cantidad:       item.Cantidad,
			Subtotal:       item.Subtotal,
		})
	}

	if d.Reserva != nil {
		resp.Reserva = &ReservaResponse{
			IDReserva:     d.Reserva.IDReserva,
			NumeroMesa:    d.Reserva.NumeroMesa,
			CapacidadMesa: d.Reserva.CapacidadMesa,
			Ubicacion:     d.Reserva.Ubicacion,
			Fecha:         d.Reserva.Fecha,
			Hora:          d.Reserva.Hora,
		}
	}

	return resp
}

// Candidatas proyecta la lista de candidatas del contexto
func Candidatas(cands []entity.CandidateSale) []CandidataResponse {
	out := make([]CandidataResponse, 0, len(cands))
	for _, c := range cands {
		out = append(out, CandidataResponse{IDVenta: c.IDVenta, Etiqueta: c.Etiqueta})
	}
	return out
}
