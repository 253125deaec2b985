package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurante/src/shared/domain/session"
	"restaurante/src/ventas/application/response"
	"restaurante/src/ventas/application/usecase"
	"restaurante/src/ventas/domain/entity"
	"restaurante/src/ventas/domain/port"
)

// VentasController maneja las peticiones HTTP del módulo de ventas
type VentasController struct {
	ventas    port.VentaRepository
	nombres   port.NombreClienteResolver
	exportUC  *usecase.ExportTicketUseCase
	transform usecase.ReservaDisplayTransform
}

// NewVentasController crea una nueva instancia del controlador
func NewVentasController(
	ventas port.VentaRepository,
	nombres port.NombreClienteResolver,
	exportUC *usecase.ExportTicketUseCase,
	transform usecase.ReservaDisplayTransform,
) *VentasController {
	return &VentasController{
		ventas:    ventas,
		nombres:   nombres,
		exportUC:  exportUC,
		transform: transform,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *VentasController) RegisterRoutes(router *gin.RouterGroup) {
	ventas := router.Group("/ventas")
	{
		ventas.GET("", c.Listar)
		ventas.GET("/detalle/:modo/:id", c.Detalle)
		ventas.GET("/atendidas/:id_empleado", c.Atendidas)
		ventas.GET("/cliente/:id_cliente", c.PorCliente)
		ventas.PUT("/:id/estado", c.ActualizarEstado)
		ventas.PUT("/:id/completa", c.ActualizarCompleta)
		ventas.GET("/ticket/:id", c.Ticket)
	}

	log.Println("Rutas Ventas disponibles:")
	log.Println("  GET    /api/v1/ventas?fecha=YYYY-MM-DD")
	log.Println("  GET    /api/v1/ventas/detalle/:modo/:id?perfil=&seleccion=")
	log.Println("  GET    /api/v1/ventas/atendidas/:id_empleado?fecha=")
	log.Println("  GET    /api/v1/ventas/cliente/:id_cliente?fecha=")
	log.Println("  PUT    /api/v1/ventas/:id/estado")
	log.Println("  PUT    /api/v1/ventas/:id/completa")
	log.Println("  GET    /api/v1/ventas/ticket/:id")
}

// sesion arma la sesión explícita desde los headers de la petición
func sesion(ctx *gin.Context) session.Context {
	sess := session.FromAuthHeader(ctx.GetHeader("Authorization"))
	if v, err := strconv.Atoi(ctx.GetHeader("X-Usuario-ID")); err == nil {
		sess.IDUsuario = v
	}
	if v, err := strconv.Atoi(ctx.GetHeader("X-Empleado-ID")); err == nil {
		sess.IDEmpleado = v
	}
	return sess
}

// Detalle resuelve y devuelve la vista de detalle de venta.
//
// :modo es "venta" o "reserva"; :id el id pedido. ?seleccion= permite
// re-seleccionar una candidata de la misma reserva; ?perfil= (staff|cliente)
// decide qué campos se proyectan.
func (c *VentasController) Detalle(ctx *gin.Context) {
	agregador := usecase.NewSaleDetailAggregator(c.ventas, c.nombres, sesion(ctx))

	err := agregador.ResolveContext(ctx.Request.Context(), ctx.Param("modo"), ctx.Param("id"))
	if err != nil {
		c.responderErrorResolucion(ctx, err)
		return
	}

	// Selección explícita de una candidata, si viene en la query
	if sel := ctx.Query("seleccion"); sel != "" {
		idSel, convErr := strconv.Atoi(sel)
		if convErr != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "seleccion must be an integer"})
			return
		}
		err = agregador.SelectSale(ctx.Request.Context(), idSel)
	} else if selected := agregador.Selected(); selected != nil {
		err = agregador.LoadDetail(ctx.Request.Context(), *selected)
	}

	if err != nil {
		var fetchErr *entity.DetailFetchError
		if errors.As(err, &fetchErr) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": fetchErr.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	vista := agregador.Snapshot()
	perfil := response.ParsePerfil(ctx.Query("perfil"))
	detalle := response.FromDetail(vista.Detalle, perfil)

	// Ajuste cosmético de fecha/hora de reserva, solo display
	if detalle != nil && detalle.Reserva != nil {
		detalle.Reserva.Fecha, detalle.Reserva.Hora = c.transform.Apply(detalle.Reserva.Fecha, detalle.Reserva.Hora)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"modo":         vista.Contexto.Modo,
		"id_pedido":    vista.Contexto.RequestedID,
		"candidatas":   response.Candidatas(vista.Contexto.Candidatas),
		"seleccionada": vista.Contexto.Selected,
		"detalle":      detalle,
		"total":        usecase.DisplayTotal(vista.Detalle),
		"fecha":        usecase.DisplayDate(vista.Detalle),
	})
}

// responderErrorResolucion mapea los errores de resolución a códigos HTTP
func (c *VentasController) responderErrorResolucion(ctx *gin.Context, err error) {
	var sinVentas *entity.NoMatchingSaleError
	switch {
	case errors.Is(err, entity.ErrIDInvalido), errors.Is(err, entity.ErrModoDesconocido):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &sinVentas):
		ctx.JSON(http.StatusNotFound, gin.H{"error": sinVentas.Error()})
	default:
		log.Printf("Error resolviendo contexto de detalle: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// Listar devuelve el listado de ventas, opcionalmente filtrado por fecha
func (c *VentasController) Listar(ctx *gin.Context) {
	var (
		ventas []entity.SaleSummary
		err    error
	)
	if fecha := ctx.Query("fecha"); fecha != "" {
		ventas, err = c.ventas.ListarPorFecha(ctx.Request.Context(), sesion(ctx), fecha)
	} else {
		ventas, err = c.ventas.ListarTodas(ctx.Request.Context(), sesion(ctx))
	}
	c.responderListado(ctx, ventas, err)
}

// Atendidas devuelve las ventas atendidas por un mesero en una fecha
func (c *VentasController) Atendidas(ctx *gin.Context) {
	idEmpleado, err := strconv.Atoi(ctx.Param("id_empleado"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id_empleado must be an integer"})
		return
	}

	ventas, err := c.ventas.AtendidasPorEmpleado(ctx.Request.Context(), sesion(ctx), idEmpleado, ctx.Query("fecha"))
	c.responderListado(ctx, ventas, err)
}

// PorCliente devuelve el historial de ventas de un cliente
func (c *VentasController) PorCliente(ctx *gin.Context) {
	idCliente, err := strconv.Atoi(ctx.Param("id_cliente"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id_cliente must be an integer"})
		return
	}

	ventas, err := c.ventas.PorCliente(ctx.Request.Context(), sesion(ctx), idCliente, ctx.Query("fecha"))
	c.responderListado(ctx, ventas, err)
}

func (c *VentasController) responderListado(ctx *gin.Context, ventas []entity.SaleSummary, err error) {
	if err != nil {
		log.Printf("Error listando ventas: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items":       ventas,
		"total_count": len(ventas),
	})
}

// ActualizarEstado actualización parcial del estado de una venta
func (c *VentasController) ActualizarEstado(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var body struct {
		Estado string `json:"estado" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "estado is required"})
		return
	}

	if err := c.ventas.ActualizarEstado(ctx.Request.Context(), sesion(ctx), id, body.Estado); err != nil {
		log.Printf("Error actualizando estado de venta %d: %v", id, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id_venta": id, "estado": body.Estado})
}

// ActualizarCompleta reemplazo completo de las líneas de una venta
func (c *VentasController) ActualizarCompleta(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var body struct {
		Productos []struct {
			IDProducto int `json:"id_producto" binding:"required"`
			Cantidad   int `json:"cantidad" binding:"required"`
		} `json:"productos" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "productos is required"})
		return
	}

	items := make([]entity.LineItemUpdate, 0, len(body.Productos))
	for _, p := range body.Productos {
		items = append(items, entity.LineItemUpdate{IDProducto: p.IDProducto, Cantidad: p.Cantidad})
	}

	if err := c.ventas.ActualizarCompleta(ctx.Request.Context(), sesion(ctx), id, items); err != nil {
		log.Printf("Error actualizando venta %d: %v", id, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id_venta": id, "items": len(items)})
}

// Ticket exporta el ticket PDF de una venta y lo entrega como adjunto
func (c *VentasController) Ticket(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if c.exportUC.Busy() {
		ctx.JSON(http.StatusConflict, gin.H{"error": "a ticket export is already in progress"})
		return
	}

	ruta, err := c.exportUC.Execute(ctx.Request.Context(), sesion(ctx), &id)
	if err != nil {
		if errors.Is(err, entity.ErrSinVentaSeleccionada) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error exportando ticket de venta %d: %v", id, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx.FileAttachment(ruta, "ticket_"+strconv.Itoa(id)+".pdf")
}
