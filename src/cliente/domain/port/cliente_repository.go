package port

import (
	"context"

	"restaurante/src/cliente/domain/entity"
	"restaurante/src/shared/domain/session"
)

// ClienteRepository define el contrato con el backend de clientes
type ClienteRepository interface {
	Listar(ctx context.Context, sess session.Context) ([]entity.Cliente, error)
	BuscarPorID(ctx context.Context, sess session.Context, idCliente int) (*entity.Cliente, error)
	BuscarPorUsuario(ctx context.Context, sess session.Context, idUsuario int) (*entity.Cliente, error)
	Crear(ctx context.Context, sess session.Context, cliente *entity.Cliente) error
	Actualizar(ctx context.Context, sess session.Context, cliente *entity.Cliente) error
}
