package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"restaurante/src/shared/domain/session"
	"restaurante/src/shared/infrastructure/metrics"
	"restaurante/src/ventas/domain/entity"
	"restaurante/src/ventas/domain/port"
)

// ExportTicketUseCase descarga el ticket PDF de una venta y lo guarda en disco
type ExportTicketUseCase struct {
	ventas      port.VentaRepository
	downloadDir string

	// flag de ocupado para que el control que dispara la exportación
	// pueda deshabilitarse mientras hay una en curso
	busy atomic.Bool
}

// NewExportTicketUseCase crea una nueva instancia del caso de uso
func NewExportTicketUseCase(ventas port.VentaRepository, downloadDir string) *ExportTicketUseCase {
	return &ExportTicketUseCase{
		ventas:      ventas,
		downloadDir: downloadDir,
	}
}

// Execute exporta el ticket de la venta seleccionada.
// Con selección nula falla antes de tocar la red. Devuelve la ruta escrita.
// El flag de ocupado se limpia siempre, con éxito o con fallo.
func (uc *ExportTicketUseCase) Execute(ctx context.Context, sess session.Context, idVenta *int) (string, error) {
	if idVenta == nil {
		return "", entity.ErrSinVentaSeleccionada
	}

	uc.busy.Store(true)
	defer uc.busy.Store(false)

	datos, err := uc.ventas.DescargarTicket(ctx, sess, *idVenta)
	if err != nil {
		metrics.TicketExports.WithLabelValues("error").Inc()
		return "", &entity.TicketExportError{IDVenta: *idVenta, Err: err}
	}

	ruta := filepath.Join(uc.downloadDir, fmt.Sprintf("ticket_%d.pdf", *idVenta))
	if err := os.WriteFile(ruta, datos, 0o644); err != nil {
		metrics.TicketExports.WithLabelValues("error").Inc()
		return "", &entity.TicketExportError{IDVenta: *idVenta, Err: err}
	}

	metrics.TicketExports.WithLabelValues("ok").Inc()
	return ruta, nil
}

// Busy indica si hay una exportación en curso
func (uc *ExportTicketUseCase) Busy() bool {
	return uc.busy.Load()
}
