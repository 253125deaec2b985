package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"restaurante/src/catalogo/domain/entity"
	"restaurante/src/shared/domain/session"
	"restaurante/src/shared/infrastructure/metrics"
)

// restClient base compartida de los clientes de catálogo (puestos y tipos):
// mismo backend, mismos verbos, solo cambia el recurso y el shape del item.
type restClient struct {
	httpClient *http.Client
	baseURL    string
	recurso    string // segmento de path: "puestos" o "tipo"
}

// do ejecuta la llamada HTTP, instrumenta métricas y normaliza errores
func (c *restClient) do(ctx context.Context, sess session.Context, method, fullURL string, payload interface{}) ([]byte, error) {
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
	metrics.UpstreamDuration.WithLabelValues(c.recurso).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(c.recurso, "error").Inc()
		return nil, fmt.Errorf("error calling %s backend: %w", c.recurso, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(c.recurso, "error").Inc()
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	// 409: la unicidad del nombre la decide el backend; el chequeo
	// local previo es solo consultivo
	if resp.StatusCode == http.StatusConflict {
		metrics.UpstreamRequests.WithLabelValues(c.recurso, "error").Inc()
		return nil, entity.ErrNombreDuplicado
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		metrics.UpstreamRequests.WithLabelValues(c.recurso, "error").Inc()
		return nil, fmt.Errorf("%s backend returned status %d: %s", c.recurso, resp.StatusCode, string(body))
	}

	metrics.UpstreamRequests.WithLabelValues(c.recurso, "ok").Inc()
	return body, nil
}

// puestoDTO representa un puesto en el wire del backend
type puestoDTO struct {
	IDPuesto     int    `json:"idpuesto"`
	NombrePuesto string `json:"nombrepuesto"`
}

// PuestosClient cliente HTTP contra /api/puestos
type PuestosClient struct {
	restClient
}

// NewPuestosClient crea una nueva instancia del cliente
func NewPuestosClient(baseURL string, timeout time.Duration) *PuestosClient {
	return &PuestosClient{restClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		recurso:    "puestos",
	}}
}

// Listar obtiene todos los puestos
func (c *PuestosClient) Listar(ctx context.Context, sess session.Context) ([]entity.Puesto, error) {
	body, err := c.do(ctx, sess, http.MethodGet, c.baseURL+"/api/puestos/listat", nil)
	if err != nil {
		return nil, err
	}

	var dtos []puestoDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling puestos: %w", err)
	}

	puestos := make([]entity.Puesto, 0, len(dtos))
	for _, d := range dtos {
		puestos = append(puestos, entity.Puesto{IDPuesto: d.IDPuesto, Nombre: d.NombrePuesto})
	}
	return puestos, nil
}

// Buscar obtiene un puesto por id
func (c *PuestosClient) Buscar(ctx context.Context, sess session.Context, id int) (*entity.Puesto, error) {
	body, err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("%s/api/puestos/buscaid/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var dto puestoDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("error unmarshalling puesto: %w", err)
	}
	return &entity.Puesto{IDPuesto: dto.IDPuesto, Nombre: dto.NombrePuesto}, nil
}

// Crear registra un puesto nuevo
func (c *PuestosClient) Crear(ctx context.Context, sess session.Context, nombre string) error {
	_, err := c.do(ctx, sess, http.MethodPost, c.baseURL+"/api/puestos/crear", puestoDTO{NombrePuesto: nombre})
	return err
}

// Actualizar cambia el nombre de un puesto
func (c *PuestosClient) Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error {
	_, err := c.do(ctx, sess, http.MethodPut, fmt.Sprintf("%s/api/puestos/actualizar/%d", c.baseURL, id), puestoDTO{IDPuesto: id, NombrePuesto: nombre})
	return err
}

// Eliminar borra un puesto
func (c *PuestosClient) Eliminar(ctx context.Context, sess session.Context, id int) error {
	_, err := c.do(ctx, sess, http.MethodDelete, fmt.Sprintf("%s/api/puestos/eliminar/%d", c.baseURL, id), nil)
	return err
}

// tipoDTO representa un tipo de producto en el wire del backend
type tipoDTO struct {
	IDTipo     int    `json:"idtipo"`
	NombreTipo string `json:"nombretipo"`
}

// TiposClient cliente HTTP contra /api/tipo
type TiposClient struct {
	restClient
}

// NewTiposClient crea una nueva instancia del cliente
func NewTiposClient(baseURL string, timeout time.Duration) *TiposClient {
	return &TiposClient{restClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		recurso:    "tipo",
	}}
}

// Listar obtiene todos los tipos de producto
func (c *TiposClient) Listar(ctx context.Context, sess session.Context) ([]entity.Tipo, error) {
	body, err := c.do(ctx, sess, http.MethodGet, c.baseURL+"/api/tipo/listat", nil)
	if err != nil {
		return nil, err
	}

	var dtos []tipoDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("error unmarshalling tipos: %w", err)
	}

	tipos := make([]entity.Tipo, 0, len(dtos))
	for _, d := range dtos {
		tipos = append(tipos, entity.Tipo{IDTipo: d.IDTipo, Nombre: d.NombreTipo})
	}
	return tipos, nil
}

// Buscar obtiene un tipo por id
func (c *TiposClient) Buscar(ctx context.Context, sess session.Context, id int) (*entity.Tipo, error) {
	body, err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("%s/api/tipo/buscaid/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var dto tipoDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("error unmarshalling tipo: %w", err)
	}
	return &entity.Tipo{IDTipo: dto.IDTipo, Nombre: dto.NombreTipo}, nil
}

// Crear registra un tipo nuevo
func (c *TiposClient) Crear(ctx context.Context, sess session.Context, nombre string) error {
	_, err := c.do(ctx, sess, http.MethodPost, c.baseURL+"/api/tipo/crear", tipoDTO{NombreTipo: nombre})
	return err
}

// Actualizar cambia el nombre de un tipo
func (c *TiposClient) Actualizar(ctx context.Context, sess session.Context, id int, nombre string) error {
	_, err := c.do(ctx, sess, http.MethodPut, fmt.Sprintf("%s/api/tipo/actualizar/%d", c.baseURL, id), tipoDTO{IDTipo: id, NombreTipo: nombre})
	return err
}

// Eliminar borra un tipo
func (c *TiposClient) Eliminar(ctx context.Context, sess session.Context, id int) error {
	_, err := c.do(ctx, sess, http.MethodDelete, fmt.Sprintf("%s/api/tipo/eliminar/%d", c.baseURL, id), nil)
	return err
}
