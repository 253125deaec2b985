package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"restaurante/src/catalogo/domain/entity"
	"restaurante/src/catalogo/domain/port"
	"restaurante/src/shared/domain/session"
)

// SaveTipoUseCase crea o renombra un tipo de producto con el mismo chequeo
// consultivo de nombre que los puestos.
type SaveTipoUseCase struct {
	tipos port.TipoRepository
}

// NewSaveTipoUseCase crea una nueva instancia del caso de uso
func NewSaveTipoUseCase(tipos port.TipoRepository) *SaveTipoUseCase {
	return &SaveTipoUseCase{tipos: tipos}
}

// Crear registra un tipo nuevo
func (uc *SaveTipoUseCase) Crear(ctx context.Context, sess session.Context, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return entity.ErrNombreRequerido
	}

	if err := uc.checkNombre(ctx, sess, nombre, 0); err != nil {
		return err
	}
	return uc.tipos.Crear(ctx, sess, nombre)
}

// Actualizar renombra un tipo existente
func (uc *SaveTipoUseCase) Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return entity.ErrNombreRequerido
	}

	if err := uc.checkNombre(ctx, sess, nombre, id); err != nil {
		return err
	}
	return uc.tipos.Actualizar(ctx, sess, id, nombre)
}

func (uc *SaveTipoUseCase) checkNombre(ctx context.Context, sess session.Context, nombre string, excluirID int) error {
	existentes, err := uc.tipos.Listar(ctx, sess)
	if err != nil {
		log.Warn().Err(err).Msg("could not list tipos for advisory name check")
		return nil
	}

	for _, t := range existentes {
		if t.IDTipo != excluirID && strings.EqualFold(strings.TrimSpace(t.Nombre), nombre) {
			return entity.ErrNombreDuplicado
		}
	}
	return nil
}
