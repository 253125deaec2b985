package entity

import (
	"errors"
	"fmt"
)

var (
	ErrIDInvalido           = errors.New("id must be a valid integer")
	ErrModoDesconocido      = errors.New("unknown resolution mode")
	ErrSinVentaSeleccionada = errors.New("no sale selected")
)

// NoMatchingSaleError indica que una reserva no tiene ventas asociadas.
// Es terminal para la vista actual; no se reintenta.
type NoMatchingSaleError struct {
	IDReserva int
}

func (e *NoMatchingSaleError) Error() string {
	return fmt.Sprintf("no sales found for reservation %d", e.IDReserva)
}

// DetailFetchError fallo al cargar el detalle consolidado de una venta.
// Incluye el id para diagnóstico de soporte.
type DetailFetchError struct {
	IDVenta int
	Err     error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("error loading detail for sale %d: %v", e.IDVenta, e.Err)
}

func (e *DetailFetchError) Unwrap() error { return e.Err }

// TicketExportError fallo al descargar o guardar el ticket PDF de una venta
type TicketExportError struct {
	IDVenta int
	Err     error
}

func (e *TicketExportError) Error() string {
	return fmt.Sprintf("error exporting ticket for sale %d: %v", e.IDVenta, e.Err)
}

func (e *TicketExportError) Unwrap() error { return e.Err }
