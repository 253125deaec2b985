package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante/src/shared/domain/session"
	"restaurante/src/ventas/application/usecase"
	"restaurante/src/ventas/domain/entity"
)

type mockVentaRepo struct {
	ventas     []entity.SaleSummary
	detalles   map[int]*entity.SaleDetail
	listErr    error
	detailErr  error
	ticketData []byte
	ticketErr  error
	lastSess   session.Context
}

func (m *mockVentaRepo) ListarTodas(ctx context.Context, sess session.Context) ([]entity.SaleSummary, error) {
	m.lastSess = sess
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.ventas, nil
}

func (m *mockVentaRepo) ListarPorFecha(ctx context.Context, sess session.Context, fecha string) ([]entity.SaleSummary, error) {
	return m.ListarTodas(ctx, sess)
}

func (m *mockVentaRepo) AtendidasPorEmpleado(ctx context.Context, sess session.Context, idEmpleado int, fecha string) ([]entity.SaleSummary, error) {
	return m.ListarTodas(ctx, sess)
}

func (m *mockVentaRepo) PorCliente(ctx context.Context, sess session.Context, idCliente int, fecha string) ([]entity.SaleSummary, error) {
	return m.ListarTodas(ctx, sess)
}

func (m *mockVentaRepo) DetalleCompleto(ctx context.Context, sess session.Context, idVenta int) (*entity.SaleDetail, error) {
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	if d, ok := m.detalles[idVenta]; ok {
		return d, nil
	}
	return nil, errors.New("sale not found")
}

func (m *mockVentaRepo) ActualizarEstado(ctx context.Context, sess session.Context, idVenta int, estado string) error {
	return nil
}

func (m *mockVentaRepo) ActualizarCompleta(ctx context.Context, sess session.Context, idVenta int, items []entity.LineItemUpdate) error {
	return nil
}

func (m *mockVentaRepo) DescargarTicket(ctx context.Context, sess session.Context, idVenta int) ([]byte, error) {
	if m.ticketErr != nil {
		return nil, m.ticketErr
	}
	return m.ticketData, nil
}

type mockNombres struct{}

func (m *mockNombres) Resolve(ctx context.Context, sess session.Context, idCliente int) (string, error) {
	return "Ana Torres", nil
}

func intPtr(v int) *int { return &v }

func setupRouter(t *testing.T, repo *mockVentaRepo, transform usecase.ReservaDisplayTransform) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	exportUC := usecase.NewExportTicketUseCase(repo, t.TempDir())
	ctrl := NewVentasController(repo, &mockNombres{}, exportUC, transform)

	router := gin.New()
	grupo := router.Group("/api/v1")
	ctrl.RegisterRoutes(grupo)
	return router
}

func detalleDePrueba(id int) *entity.SaleDetail {
	return &entity.SaleDetail{
		IDVenta: id,
		Total:   decimal.NewFromFloat(13.50),
		Fecha:   "2026-08-30",
		Cliente: &entity.ClientInfo{IDCliente: 100, NombreCompleto: "Ana Torres"},
		Empleado: &entity.EmployeeInfo{
			IDEmpleado: 3,
			Nombre:     "Marcos",
			Puesto:     "Mesero",
		},
		Productos: []entity.LineItem{
			{IDProducto: 1, NombreProducto: "Tacos", PrecioUnitario: decimal.NewFromFloat(5), Cantidad: 2, Subtotal: decimal.NewFromFloat(10)},
		},
	}
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer abc")
	router.ServeHTTP(w, req)
	return w
}

func TestDetalle_IDNoNumerico(t *testing.T) {
	repo := &mockVentaRepo{}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/venta/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetalle_ModoDesconocido(t *testing.T) {
	repo := &mockVentaRepo{}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/pedido/10")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetalle_ReservaSinVentas(t *testing.T) {
	repo := &mockVentaRepo{ventas: []entity.SaleSummary{
		{IDVenta: 1, IDReserva: intPtr(9)},
	}}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/reserva/5")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetalle_ModoVenta(t *testing.T) {
	repo := &mockVentaRepo{detalles: map[int]*entity.SaleDetail{42: detalleDePrueba(42)}}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/venta/42")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Modo         string `json:"modo"`
		Seleccionada *int   `json:"seleccionada"`
		Detalle      struct {
			IDVenta       int    `json:"id_venta"`
			NombreCliente string `json:"nombre_cliente"`
			Empleado      *struct {
				Nombre string `json:"nombre"`
			} `json:"empleado"`
		} `json:"detalle"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "venta", body.Modo)
	require.NotNil(t, body.Seleccionada)
	assert.Equal(t, 42, *body.Seleccionada)
	assert.Equal(t, 42, body.Detalle.IDVenta)
	assert.Equal(t, "Ana Torres", body.Detalle.NombreCliente)
	require.NotNil(t, body.Detalle.Empleado, "perfil staff ve al empleado")
	assert.Equal(t, "Marcos", body.Detalle.Empleado.Nombre)
	assert.Equal(t, "13.5", body.Total)
}

func TestDetalle_PerfilClienteOcultaEmpleado(t *testing.T) {
	repo := &mockVentaRepo{detalles: map[int]*entity.SaleDetail{42: detalleDePrueba(42)}}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/venta/42?perfil=cliente")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Detalle map[string]json.RawMessage `json:"detalle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, tieneEmpleado := body.Detalle["empleado"]
	assert.False(t, tieneEmpleado, "el perfil cliente no ve al empleado")
	assert.Contains(t, body.Detalle, "nombre_cliente")
}

func TestDetalle_ReservaConSeleccion(t *testing.T) {
	repo := &mockVentaRepo{
		ventas: []entity.SaleSummary{
			{IDVenta: 1, IDCliente: 100, IDReserva: intPtr(5)},
			{IDVenta: 2, IDCliente: 100, IDReserva: intPtr(5)},
		},
		detalles: map[int]*entity.SaleDetail{
			1: detalleDePrueba(1),
			2: detalleDePrueba(2),
		},
	}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/reserva/5?seleccion=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Candidatas []struct {
			IDVenta  int    `json:"id_venta"`
			Etiqueta string `json:"etiqueta"`
		} `json:"candidatas"`
		Seleccionada *int `json:"seleccionada"`
		Detalle      struct {
			IDVenta int `json:"id_venta"`
		} `json:"detalle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	require.Len(t, body.Candidatas, 2)
	assert.Equal(t, "Ana Torres", body.Candidatas[0].Etiqueta)
	require.NotNil(t, body.Seleccionada)
	assert.Equal(t, 2, *body.Seleccionada)
	assert.Equal(t, 2, body.Detalle.IDVenta)
}

func TestDetalle_FalloDeCargaEs502(t *testing.T) {
	repo := &mockVentaRepo{detailErr: errors.New("upstream timeout")}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/venta/42")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestDetalle_TransformDeReservaSoloDisplay(t *testing.T) {
	detalle := detalleDePrueba(1)
	detalle.IDReserva = intPtr(5)
	detalle.Reserva = &entity.ReservationInfo{
		IDReserva: 5, NumeroMesa: 12, Fecha: "2026-05-10", Hora: "04:00",
	}
	repo := &mockVentaRepo{
		ventas:   []entity.SaleSummary{{IDVenta: 1, IDCliente: 100, IDReserva: intPtr(5)}},
		detalles: map[int]*entity.SaleDetail{1: detalle},
	}
	transform := usecase.ReservaDisplayTransform{Enabled: true, Days: 2, Hours: -6}
	router := setupRouter(t, repo, transform)

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/detalle/reserva/5")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Detalle struct {
			Reserva struct {
				Fecha string `json:"fecha"`
				Hora  string `json:"hora"`
			} `json:"reserva"`
		} `json:"detalle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2026-05-11", body.Detalle.Reserva.Fecha)
	assert.Equal(t, "22:00", body.Detalle.Reserva.Hora)
}

func TestListar_PropagaSesion(t *testing.T) {
	repo := &mockVentaRepo{ventas: []entity.SaleSummary{{IDVenta: 1}}}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer abc", repo.lastSess.AuthToken)

	var body struct {
		TotalCount int `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalCount)
}

func TestListar_FalloUpstreamEs502(t *testing.T) {
	repo := &mockVentaRepo{listErr: errors.New("connection refused")}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAtendidas_IDInvalido(t *testing.T) {
	repo := &mockVentaRepo{}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/atendidas/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicket_Descarga(t *testing.T) {
	pdf := []byte("%PDF-1.4 ticket")
	repo := &mockVentaRepo{ticketData: pdf}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/ticket/42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pdf, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ticket_42.pdf")
}

func TestTicket_FalloDeDescargaEs502(t *testing.T) {
	repo := &mockVentaRepo{ticketErr: errors.New("upstream timeout")}
	router := setupRouter(t, repo, usecase.ReservaDisplayTransform{})

	w := doRequest(router, http.MethodGet, "/api/v1/ventas/ticket/42")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
