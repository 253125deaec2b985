package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurante/src/cliente/domain/entity"
	"restaurante/src/shared/domain/session"
	"restaurante/src/shared/infrastructure/metrics"
)

// clienteDTO representa un cliente en el wire del backend
type clienteDTO struct {
	IDCliente       int    `json:"idcliente"`
	NombreCliente   string `json:"nombrecliente"`
	ApellidoCliente string `json:"apellidocliente"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
	IDUsuario       int    `json:"idUsuario"`
}

func (d clienteDTO) toEntity() entity.Cliente {
	return entity.Cliente{
		IDCliente: d.IDCliente,
		Nombre:    d.NombreCliente,
		Apellido:  d.ApellidoCliente,
		Telefono:  d.Telefono,
		Direccion: d.Direccion,
		IDUsuario: d.IDUsuario,
	}
}

func fromEntity(c *entity.Cliente) clienteDTO {
	return clienteDTO{
		IDCliente:       c.IDCliente,
		NombreCliente:   c.Nombre,
		ApellidoCliente: c.Apellido,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		IDUsuario:       c.IDUsuario,
	}
}

// ClienteClient cliente HTTP contra el backend de clientes
type ClienteClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewClienteClient crea una nueva instancia del cliente
func NewClienteClient(baseURL string, timeout time.Duration) *ClienteClient {
	return &ClienteClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Listar obtiene todos los clientes
func (c *ClienteClient) Listar(ctx context.Context, sess session.Context) ([]entity.Cliente, error) {
	body, err := c.do(ctx, sess, http.MethodGet, "cliente_listat", c.baseURL+"/api/cliente/listat", nil)
	if err != nil {
		return nil, err
	}

	var dtos []clienteDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling clients list: %w", err)
	}

	clientes := make([]entity.Cliente, 0, len(dtos))
	for _, d := range dtos {
		clientes = append(clientes, d.toEntity())
	}
	return clientes, nil
}

// BuscarPorID obtiene un cliente por su id
func (c *ClienteClient) BuscarPorID(ctx context.Context, sess session.Context, idCliente int) (*entity.Cliente, error) {
	u := fmt.Sprintf("%s/api/cliente/buscaid/%d", c.baseURL, idCliente)
	return c.buscar(ctx, sess, "cliente_buscaid", u)
}

// BuscarPorUsuario obtiene el cliente ligado a un id de usuario
func (c *ClienteClient) BuscarPorUsuario(ctx context.Context, sess session.Context, idUsuario int) (*entity.Cliente, error) {
	u := fmt.Sprintf("%s/api/cliente/usuario/%d", c.baseURL, idUsuario)
	return c.buscar(ctx, sess, "cliente_usuario", u)
}

func (c *ClienteClient) buscar(ctx context.Context, sess session.Context, endpoint, fullURL string) (*entity.Cliente, error) {
	body, err := c.do(ctx, sess, http.MethodGet, endpoint, fullURL, nil)
	if err != nil {
		return nil, err
	}

	var dto clienteDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("error unmarshalling client: %w", err)
	}
	cliente := dto.toEntity()
	return &cliente, nil
}

// Crear registra un cliente nuevo
func (c *ClienteClient) Crear(ctx context.Context, sess session.Context, cliente *entity.Cliente) error {
	_, err := c.do(ctx, sess, http.MethodPost, "cliente_crear", c.baseURL+"/api/cliente/crear", fromEntity(cliente))
	return err
}

// Actualizar modifica los datos de un cliente existente
func (c *ClienteClient) Actualizar(ctx context.Context, sess session.Context, cliente *entity.Cliente) error {
	u := fmt.Sprintf("%s/api/cliente/actualizar/%d", c.baseURL, cliente.IDCliente)
	_, err := c.do(ctx, sess, http.MethodPut, "cliente_actualizar", u, fromEntity(cliente))
	return err
}

// do ejecuta la llamada HTTP, instrumenta métricas y normaliza errores
func (c *ClienteClient) do(ctx context.Context, sess session.Context, method, endpoint, fullURL string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.AuthToken != "" {
		req.Header.Set("Authorization", sess.AuthToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("error calling cliente backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, entity.ErrClienteNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("cliente backend returned status %d: %s", resp.StatusCode, string(body))
	}

	metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}
