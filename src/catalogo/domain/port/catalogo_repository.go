package port

import (
	"context"

	"restaurante/src/catalogo/domain/entity"
	"restaurante/src/shared/domain/session"
)

// PuestoRepository define el contrato con el backend de puestos
type PuestoRepository interface {
	Listar(ctx context.Context, sess session.Context) ([]entity.Puesto, error)
	Buscar(ctx context.Context, sess session.Context, id int) (*entity.Puesto, error)
	Crear(ctx context.Context, sess session.Context, nombre string) error
	Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error
	Eliminar(ctx context.Context, sess session.Context, id int) error
}

// TipoRepository define el contrato con el backend de tipos de producto
type TipoRepository interface {
	Listar(ctx context.Context, sess session.Context) ([]entity.Tipo, error)
	Buscar(ctx context.Context, sess session.Context, id int) (*entity.Tipo, error)
	Crear(ctx context.Context, sess session.Context, nombre string) error
	Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error
	Eliminar(ctx context.Context, sess session.Context, id int) error
}
