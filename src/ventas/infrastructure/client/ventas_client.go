package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"restaurante/src/shared/domain/session"
	"restaurante/src/shared/infrastructure/metrics"
	"restaurante/src/ventas/domain/entity"
)

// ventaListaDTO representa una fila del listado de ventas del backend
type ventaListaDTO struct {
	IDVenta    int             `json:"idventa"`
	TotalVenta decimal.Decimal `json:"totalventa"`
	FechaVenta string          `json:"fechaventa"`
	Estado     string          `json:"estado"`
	IDCliente  int             `json:"idCliente"`
	IDReserva  *int            `json:"idReserva"`
}

// clienteInfoDTO bloque de cliente dentro del detalle consolidado
type clienteInfoDTO struct {
	IDCliente       int    `json:"idcliente"`
	NombreCliente   string `json:"nombrecliente"`
	ApellidoCliente string `json:"apellidocliente"`
}

// empleadoDTO bloque del empleado que atiende
type empleadoDTO struct {
	IDEmpleado int    `json:"idEmpleado"`
	Nombre     string `json:"nombre"`
	Puesto     string `json:"puesto"`
}

// productoVendidoDTO línea de producto del detalle
type productoVendidoDTO struct {
	IDProducto     int             `json:"idProducto"`
	NombreProducto string          `json:"nombreProducto"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// reservaInfoDTO bloque anidado de reserva/mesa del detalle
type reservaInfoDTO struct {
	IDMesa        int    `json:"idMesa"`
	NumeroMesa    int    `json:"numeroMesa"`
	CapacidadMesa int    `json:"capacidadMesa"`
	Ubicacion     string `json:"ubicacion"`
	FechaReserva  string `json:"fechaReserva"`
	HoraReserva   string `json:"horaReserva"`
}

// detalleCompletoDTO respuesta consolidada de GET /api/ventas/detallecompleto/{id}
type detalleCompletoDTO struct {
	IDVenta           int                  `json:"idventa"`
	TotalVenta        decimal.Decimal      `json:"totalventa"`
	FechaVenta        string               `json:"fechaventa"`
	IDReserva         *int                 `json:"idReserva"`
	ClienteInfo       *clienteInfoDTO      `json:"clienteInfo"`
	EmpleadoAtiende   *empleadoDTO         `json:"empleadoAtiende"`
	ProductosVendidos []productoVendidoDTO `json:"productosVendidos"`
	ReservaInfo       *reservaInfoDTO      `json:"reservaInfo"`
}

// actualizarEstadoRequest body de PUT /api/ventas/actualizar/{id}
type actualizarEstadoRequest struct {
	Estado string `json:"estado"`
}

// lineaVentaRequest línea para el reemplazo completo de items
type lineaVentaRequest struct {
	IDProducto int `json:"idProducto"`
	Cantidad   int `json:"cantidad"`
}

// actualizarCompletaRequest body de PUT /api/ventas/actualizar/completa/{id}
type actualizarCompletaRequest struct {
	Productos []lineaVentaRequest `json:"productos"`
}

// VentasClient cliente HTTP contra el backend de ventas
type VentasClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewVentasClient crea una nueva instancia del cliente
func NewVentasClient(baseURL string, timeout time.Duration) *VentasClient {
	return &VentasClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// ListarTodas obtiene el listado completo de ventas
func (c *VentasClient) ListarTodas(ctx context.Context, sess session.Context) ([]entity.SaleSummary, error) {
	return c.listar(ctx, sess, "listat", c.baseURL+"/api/ventas/listat")
}

// ListarPorFecha obtiene las ventas de una fecha; fecha vacía = sin filtro
func (c *VentasClient) ListarPorFecha(ctx context.Context, sess session.Context, fecha string) ([]entity.SaleSummary, error) {
	u := c.baseURL + "/api/ventas/listaf"
	if fecha != "" {
		u += "?fecha=" + url.QueryEscape(fecha)
	}
	return c.listar(ctx, sess, "listaf", u)
}

// AtendidasPorEmpleado obtiene las ventas atendidas por un mesero en una fecha.
// Un 204 del backend significa resultado vacío, no error.
func (c *VentasClient) AtendidasPorEmpleado(ctx context.Context, sess session.Context, idEmpleado int, fecha string) ([]entity.SaleSummary, error) {
	u := fmt.Sprintf("%s/api/ventas/atendidas/%d", c.baseURL, idEmpleado)
	if fecha != "" {
		u += "?fecha=" + url.QueryEscape(fecha)
	}
	return c.listar(ctx, sess, "atendidas", u)
}

// PorCliente obtiene las ventas de un cliente, opcionalmente por fecha
func (c *VentasClient) PorCliente(ctx context.Context, sess session.Context, idCliente int, fecha string) ([]entity.SaleSummary, error) {
	u := fmt.Sprintf("%s/api/ventas/cliente/%d", c.baseURL, idCliente)
	if fecha != "" {
		u += "?fecha=" + url.QueryEscape(fecha)
	}
	return c.listar(ctx, sess, "cliente", u)
}

// listar ejecuta un GET de listado y decodifica las filas
func (c *VentasClient) listar(ctx context.Context, sess session.Context, endpoint, fullURL string) ([]entity.SaleSummary, error) {
	body, status, err := c.do(ctx, sess, http.MethodGet, endpoint, fullURL, nil)
	if err != nil {
		return nil, err
	}

	// 204: el mesero no atendió ventas ese día
	if status == http.StatusNoContent {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "empty").Inc()
		return []entity.SaleSummary{}, nil
	}

	var filas []ventaListaDTO
	if err := json.Unmarshal(body, &filas); err != nil {
		return nil, fmt.Errorf("error unmarshalling sales list: %w", err)
	}

	ventas := make([]entity.SaleSummary, 0, len(filas))
	for _, f := range filas {
		ventas = append(ventas, entity.SaleSummary{
			IDVenta:   f.IDVenta,
			Total:     f.TotalVenta,
			Fecha:     f.FechaVenta,
			Estado:    f.Estado,
			IDCliente: f.IDCliente,
			IDReserva: f.IDReserva,
		})
	}
	return ventas, nil
}

// DetalleCompleto trae el registro consolidado de una venta en un solo
// round trip; el bloque de reserva viene anidado en la misma respuesta.
func (c *VentasClient) DetalleCompleto(ctx context.Context, sess session.Context, idVenta int) (*entity.SaleDetail, error) {
	u := fmt.Sprintf("%s/api/ventas/detallecompleto/%d", c.baseURL, idVenta)
	body, _, err := c.do(ctx, sess, http.MethodGet, "detallecompleto", u, nil)
	if err != nil {
		return nil, err
	}

	var dto detalleCompletoDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("error unmarshalling sale detail: %w", err)
	}

	detalle := &entity.SaleDetail{
		IDVenta:   dto.IDVenta,
		Total:     dto.TotalVenta,
		Fecha:     dto.FechaVenta,
		IDReserva: dto.IDReserva,
	}

	if dto.ClienteInfo != nil {
		detalle.Cliente = &entity.ClientInfo{
			IDCliente:      dto.ClienteInfo.IDCliente,
			NombreCompleto: dto.ClienteInfo.NombreCliente + " " + dto.ClienteInfo.ApellidoCliente,
		}
	}

	if dto.EmpleadoAtiende != nil {
		detalle.Empleado = &entity.EmployeeInfo{
			IDEmpleado: dto.EmpleadoAtiende.IDEmpleado,
			Nombre:     dto.EmpleadoAtiende.Nombre,
			Puesto:     dto.EmpleadoAtiende.Puesto,
		}
	}

	for _, p := range dto.ProductosVendidos {
		detalle.Productos = append(detalle.Productos, entity.LineItem{
			IDProducto:     p.IDProducto,
			NombreProducto: p.NombreProducto,
			PrecioUnitario: p.PrecioUnitario,
			Cantidad:       p.Cantidad,
			Subtotal:       p.Subtotal,
		})
	}

	if dto.ReservaInfo != nil && dto.IDReserva != nil {
		detalle.Reserva = &entity.ReservationInfo{
			IDReserva:     *dto.IDReserva,
			NumeroMesa:    dto.ReservaInfo.NumeroMesa,
			CapacidadMesa: dto.ReservaInfo.CapacidadMesa,
			Ubicacion:     dto.ReservaInfo.Ubicacion,
			Fecha:         dto.ReservaInfo.FechaReserva,
			Hora:          dto.ReservaInfo.HoraReserva,
		}
	}

	return detalle, nil
}

// ActualizarEstado actualización parcial de la venta (campo estado)
func (c *VentasClient) ActualizarEstado(ctx context.Context, sess session.Context, idVenta int, estado string) error {
	u := fmt.Sprintf("%s/api/ventas/actualizar/%d", c.baseURL, idVenta)
	_, _, err := c.do(ctx, sess, http.MethodPut, "actualizar", u, actualizarEstadoRequest{Estado: estado})
	return err
}

// ActualizarCompleta reemplazo completo de las líneas de la venta
func (c *VentasClient) ActualizarCompleta(ctx context.Context, sess session.Context, idVenta int, items []entity.LineItemUpdate) error {
	lineas := make([]lineaVentaRequest, 0, len(items))
	for _, item := range items {
		lineas = append(lineas, lineaVentaRequest{IDProducto: item.IDProducto, Cantidad: item.Cantidad})
	}

	u := fmt.Sprintf("%s/api/ventas/actualizar/completa/%d", c.baseURL, idVenta)
	_, _, err := c.do(ctx, sess, http.MethodPut, "actualizar_completa", u, actualizarCompletaRequest{Productos: lineas})
	return err
}

// DescargarTicket descarga el PDF del ticket de una venta
func (c *VentasClient) DescargarTicket(ctx context.Context, sess session.Context, idVenta int) ([]byte, error) {
	u := fmt.Sprintf("%s/api/ventas/ticket/%d", c.baseURL, idVenta)
	body, _, err := c.do(ctx, sess, http.MethodGet, "ticket", u, nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// do ejecuta la llamada HTTP, instrumenta métricas y normaliza errores
func (c *VentasClient) do(ctx context.Context, sess session.Context, method, endpoint, fullURL string, payload interface{}) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
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
		return nil, 0, fmt.Errorf("error calling ventas backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, resp.StatusCode, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, resp.StatusCode, fmt.Errorf("ventas backend returned status %d: %s", resp.StatusCode, string(body))
	}

	// El 204 lo contabiliza el caller como "empty"
	if resp.StatusCode == http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "ok").Inc()
	}
	return body, resp.StatusCode, nil
}
