package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"restaurante/src/catalogo/domain/entity"
	"restaurante/src/catalogo/domain/port"
	"restaurante/src/shared/domain/session"
)

// SavePuestoUseCase crea o renombra un puesto con chequeo consultivo de
// nombre duplicado.
//
// El chequeo local escanea la lista traída del backend, así que dos
// escrituras concurrentes pueden pasarlo las dos: la unicidad real la
// impone el backend y su 409 llega aquí como ErrNombreDuplicado.
type SavePuestoUseCase struct {
	puestos port.PuestoRepository
}

// NewSavePuestoUseCase crea una nueva instancia del caso de uso
func NewSavePuestoUseCase(puestos port.PuestoRepository) *SavePuestoUseCase {
	return &SavePuestoUseCase{puestos: puestos}
}

// Crear registra un puesto nuevo
func (uc *SavePuestoUseCase) Crear(ctx context.Context, sess session.Context, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return entity.ErrNombreRequerido
	}

	if err := uc.checkNombre(ctx, sess, nombre, 0); err != nil {
		return err
	}
	return uc.puestos.Crear(ctx, sess, nombre)
}

// Actualizar renombra un puesto existente
func (uc *SavePuestoUseCase) Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return entity.ErrNombreRequerido
	}

	if err := uc.checkNombre(ctx, sess, nombre, id); err != nil {
		return err
	}
	return uc.puestos.Actualizar(ctx, sess, id, nombre)
}

// checkNombre chequeo consultivo contra la lista actual; excluirID permite
// renombrar un puesto a su propio nombre. Si el listado falla se deja pasar:
// el backend rechazará el duplicado de todos modos.
func (uc *SavePuestoUseCase) checkNombre(ctx context.Context, sess session.Context, nombre string, excluirID int) error {
	existentes, err := uc.puestos.Listar(ctx, sess)
	if err != nil {
		log.Warn().Err(err).Msg("could not list puestos for advisory name check")
		return nil
	}

	for _, p := range existentes {
		if p.IDPuesto != excluirID && strings.EqualFold(strings.TrimSpace(p.Nombre), nombre) {
			return entity.ErrNombreDuplicado
		}
	}
	return nil
}
