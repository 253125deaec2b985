package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"restaurante/src/cliente/domain/port"
	"restaurante/src/shared/domain/session"
)

// NombreCache cache en memoria de nombres de cliente para etiquetas.
// Evita N lookups por id al armar la lista de ventas candidatas de una
// reserva. Es solo una ayuda de display: un miss cae al fetch por id.
type NombreCache struct {
	repo    port.ClienteRepository
	nombres map[int]string
	mu      sync.RWMutex
}

// NewNombreCache crea un cache vacío sobre el repositorio de clientes
func NewNombreCache(repo port.ClienteRepository) *NombreCache {
	return &NombreCache{
		repo:    repo,
		nombres: make(map[int]string),
	}
}

// Warm precarga el cache con el listado completo de clientes.
// Un fallo aquí no es fatal: el cache queda vacío y Resolve cae al
// fetch por id.
func (c *NombreCache) Warm(ctx context.Context, sess session.Context) error {
	clientes, err := c.repo.Listar(ctx, sess)
	if err != nil {
		log.Warn().Err(err).Msg("could not warm client name cache")
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range clientes {
		c.nombres[clientes[i].IDCliente] = clientes[i].NombreCompleto()
	}
	log.Info().Int("count", len(clientes)).Msg("client name cache warmed")
	return nil
}

// Resolve devuelve el nombre a mostrar de un cliente.
// Hit de cache → sin red; miss → fetch por id y se memoriza el resultado.
func (c *NombreCache) Resolve(ctx context.Context, sess session.Context, idCliente int) (string, error) {
	c.mu.RLock()
	nombre, ok := c.nombres[idCliente]
	c.mu.RUnlock()
	if ok {
		return nombre, nil
	}

	cliente, err := c.repo.BuscarPorID(ctx, sess, idCliente)
	if err != nil {
		return "", err
	}

	nombre = cliente.NombreCompleto()
	c.mu.Lock()
	c.nombres[idCliente] = nombre
	c.mu.Unlock()
	return nombre, nil
}
