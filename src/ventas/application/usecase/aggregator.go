package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"restaurante/src/shared/domain/session"
	"restaurante/src/shared/infrastructure/metrics"
	"restaurante/src/ventas/domain/entity"
	"restaurante/src/ventas/domain/port"
)

// SaleDetailAggregator resuelve qué venta mostrar y carga su detalle consolidado.
//
// Dado un par (modo, id) determina la venta seleccionada, arma la lista de
// candidatas cuando una reserva agrupa varias ventas, y trae el detalle en un
// solo round trip. El estado vive lo que dura la vista: se crea una instancia
// por navegación y se descarta al salir.
//
// Las respuestas tardías de cargas superadas se descartan con un token
// monotónico por instancia: solo la última carga emitida puede publicar estado.
type SaleDetailAggregator struct {
	ventas  port.VentaRepository
	nombres port.NombreClienteResolver
	sess    session.Context

	token atomic.Int64

	mu       sync.Mutex
	contexto entity.SaleContext
	detalle  *entity.SaleDetail
	cargando bool
	loadErr  error
}

// View es la instantánea inmutable que consume la capa de presentación
type View struct {
	Contexto entity.SaleContext
	Detalle  *entity.SaleDetail
	Cargando bool
	Err      error
}

// NewSaleDetailAggregator crea un agregador ligado a una sesión explícita
func NewSaleDetailAggregator(
	ventas port.VentaRepository,
	nombres port.NombreClienteResolver,
	sess session.Context,
) *SaleDetailAggregator {
	return &SaleDetailAggregator{
		ventas:  ventas,
		nombres: nombres,
		sess:    sess,
	}
}

// ResolveContext resuelve la venta seleccionada para un (modo, id).
//
// En modo venta el id se usa directo. En modo reserva se filtra el listado de
// ventas por la reserva pedida, se resuelven las etiquetas de las candidatas
// en paralelo (settle-all: un lookup fallido sustituye placeholder, nunca
// aborta el lote) y se auto-selecciona la primera en orden de filtrado.
func (a *SaleDetailAggregator) ResolveContext(ctx context.Context, modo, rawID string) error {
	// Validación previa: ningún id malformado llega a la red
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return fmt.Errorf("%w: %q", entity.ErrIDInvalido, rawID)
	}

	switch modo {
	case entity.ModoVenta:
		a.mu.Lock()
		a.contexto = entity.SaleContext{
			Modo:        modo,
			RequestedID: id,
			Selected:    &id,
		}
		a.mu.Unlock()
		return nil

	case entity.ModoReserva:
		return a.resolveReserva(ctx, id)

	default:
		return fmt.Errorf("%w: %q", entity.ErrModoDesconocido, modo)
	}
}

// resolveReserva arma la lista de candidatas para una reserva
func (a *SaleDetailAggregator) resolveReserva(ctx context.Context, idReserva int) error {
	todas, err := a.ventas.ListarTodas(ctx, a.sess)
	if err != nil {
		return fmt.Errorf("error listing sales for reservation %d: %w", idReserva, err)
	}

	var coincidencias []entity.SaleSummary
	for _, v := range todas {
		if v.IDReserva != nil && *v.IDReserva == idReserva {
			coincidencias = append(coincidencias, v)
		}
	}

	if len(coincidencias) == 0 {
		return &entity.NoMatchingSaleError{IDReserva: idReserva}
	}

	// Fan-out / fan-in: todas las etiquetas se resuelven en paralelo y se
	// espera a que terminen todas. El orden de salida sigue el orden del
	// filtro, no el orden de término.
	candidatas := make([]entity.CandidateSale, len(coincidencias))
	var wg sync.WaitGroup
	for i, venta := range coincidencias {
		wg.Add(1)
		go func(i int, venta entity.SaleSummary) {
			defer wg.Done()

			nombre, err := a.nombres.Resolve(ctx, a.sess, venta.IDCliente)
			if err != nil {
				// Fallo aislado: placeholder, no propagación
				metrics.LabelLookupFailures.Inc()
				nombre = entity.EtiquetaNoEncontrada
			}
			candidatas[i] = entity.CandidateSale{
				IDVenta:  venta.IDVenta,
				Etiqueta: nombre,
			}
		}(i, venta)
	}
	wg.Wait()

	selected := candidatas[0].IDVenta
	a.mu.Lock()
	a.contexto = entity.SaleContext{
		Modo:        entity.ModoReserva,
		RequestedID: idReserva,
		Candidatas:  candidatas,
		Selected:    &selected,
	}
	a.mu.Unlock()
	return nil
}

// LoadDetail carga el detalle consolidado de una venta.
//
// Antes de pedir nada limpia el estado mostrado, para que nunca se vea el
// empleado de la venta anterior mezclado con los items de la nueva. Si otra
// carga se emitió mientras esta estaba en vuelo, la respuesta se descarta.
func (a *SaleDetailAggregator) LoadDetail(ctx context.Context, idVenta int) error {
	tok := a.token.Add(1)

	a.mu.Lock()
	a.detalle = nil
	a.loadErr = nil
	a.cargando = true
	a.mu.Unlock()

	detalle, err := a.ventas.DetalleCompleto(ctx, a.sess, idVenta)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Respuesta superada por una carga más nueva: no tocar el estado
	if a.token.Load() != tok {
		return nil
	}

	a.cargando = false
	if err != nil {
		a.loadErr = &entity.DetailFetchError{IDVenta: idVenta, Err: err}
		return a.loadErr
	}
	a.detalle = detalle
	return nil
}

// SelectSale cambia la venta seleccionada y dispara la recarga del detalle.
// Ids fuera de la lista de candidatas se ignoran (no-op): el control de
// selección solo ofrece miembros de la lista.
func (a *SaleDetailAggregator) SelectSale(ctx context.Context, idVenta int) error {
	a.mu.Lock()
	if len(a.contexto.Candidatas) > 0 && !a.contexto.HasCandidate(idVenta) {
		a.mu.Unlock()
		return nil
	}
	a.contexto.Selected = &idVenta
	a.mu.Unlock()

	return a.LoadDetail(ctx, idVenta)
}

// Selected devuelve el id de venta actualmente seleccionado, o nil
func (a *SaleDetailAggregator) Selected() *int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.contexto.Selected
}

// Snapshot devuelve una copia del estado actual para renderizar
func (a *SaleDetailAggregator) Snapshot() View {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctxCopy := a.contexto
	ctxCopy.Candidatas = append([]entity.CandidateSale(nil), a.contexto.Candidatas...)

	return View{
		Contexto: ctxCopy,
		Detalle:  a.detalle,
		Cargando: a.cargando,
		Err:      a.loadErr,
	}
}
