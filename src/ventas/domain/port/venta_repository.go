package port

import (
	"context"

	"restaurante/src/shared/domain/session"
	"restaurante/src/ventas/domain/entity"
)

// VentaRepository define el contrato con el backend de ventas.
// Todas las operaciones son llamadas HTTP; el backend es la única
// fuente de verdad (totales, unicidad, estados).
type VentaRepository interface {
	// ListarTodas devuelve el listado completo de ventas
	ListarTodas(ctx context.Context, sess session.Context) ([]entity.SaleSummary, error)

	// ListarPorFecha filtra por fecha YYYY-MM-DD; fecha vacía = sin filtro
	ListarPorFecha(ctx context.Context, sess session.Context, fecha string) ([]entity.SaleSummary, error)

	// AtendidasPorEmpleado devuelve las ventas atendidas por un mesero en una fecha.
	// Un 204 del backend es resultado vacío, no error.
	AtendidasPorEmpleado(ctx context.Context, sess session.Context, idEmpleado int, fecha string) ([]entity.SaleSummary, error)

	// PorCliente devuelve las ventas de un cliente, opcionalmente filtradas por fecha
	PorCliente(ctx context.Context, sess session.Context, idCliente int, fecha string) ([]entity.SaleSummary, error)

	// DetalleCompleto trae el registro consolidado en un solo round trip
	DetalleCompleto(ctx context.Context, sess session.Context, idVenta int) (*entity.SaleDetail, error)

	// ActualizarEstado actualización parcial (estado pagada/cancelada)
	ActualizarEstado(ctx context.Context, sess session.Context, idVenta int, estado string) error

	// ActualizarCompleta reemplazo completo de las líneas de la venta
	ActualizarCompleta(ctx context.Context, sess session.Context, idVenta int, items []entity.LineItemUpdate) error

	// DescargarTicket devuelve el PDF del ticket como bytes
	DescargarTicket(ctx context.Context, sess session.Context, idVenta int) ([]byte, error)
}

// NombreClienteResolver resuelve el nombre a mostrar de un cliente.
// Lo implementa el cache de nombres del módulo cliente.
type NombreClienteResolver interface {
	Resolve(ctx context.Context, sess session.Context, idCliente int) (string, error)
}
