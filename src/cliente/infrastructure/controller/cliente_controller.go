package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurante/src/cliente/domain/entity"
	"restaurante/src/cliente/domain/port"
	"restaurante/src/shared/domain/session"
)

// ClienteController maneja las peticiones HTTP del módulo de clientes
type ClienteController struct {
	clientes port.ClienteRepository
}

// NewClienteController crea una nueva instancia del controlador
func NewClienteController(clientes port.ClienteRepository) *ClienteController {
	return &ClienteController{clientes: clientes}
}

// RegisterRoutes registra las rutas del controlador
func (c *ClienteController) RegisterRoutes(router *gin.RouterGroup) {
	clientes := router.Group("/clientes")
	{
		clientes.GET("", c.Listar)
		clientes.GET("/:id", c.Buscar)
		clientes.GET("/usuario/:id_usuario", c.BuscarPorUsuario)
		clientes.POST("", c.Crear)
		clientes.PUT("/:id", c.Actualizar)
	}

	log.Println("Rutas Clientes disponibles:")
	log.Println("  GET    /api/v1/clientes")
	log.Println("  GET    /api/v1/clientes/:id")
	log.Println("  GET    /api/v1/clientes/usuario/:id_usuario")
	log.Println("  POST   /api/v1/clientes")
	log.Println("  PUT    /api/v1/clientes/:id")
}

func sesion(ctx *gin.Context) session.Context {
	return session.FromAuthHeader(ctx.GetHeader("Authorization"))
}

// Listar devuelve todos los clientes
func (c *ClienteController) Listar(ctx *gin.Context) {
	clientes, err := c.clientes.Listar(ctx.Request.Context(), sesion(ctx))
	if err != nil {
		log.Printf("Error listando clientes: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": clientes, "total_count": len(clientes)})
}

// Buscar devuelve un cliente por id
func (c *ClienteController) Buscar(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	cliente, err := c.clientes.BuscarPorID(ctx.Request.Context(), sesion(ctx), id)
	c.responderCliente(ctx, cliente, err)
}

// BuscarPorUsuario devuelve el cliente ligado a un usuario
func (c *ClienteController) BuscarPorUsuario(ctx *gin.Context) {
	idUsuario, err := strconv.Atoi(ctx.Param("id_usuario"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id_usuario must be an integer"})
		return
	}

	cliente, err := c.clientes.BuscarPorUsuario(ctx.Request.Context(), sesion(ctx), idUsuario)
	c.responderCliente(ctx, cliente, err)
}

func (c *ClienteController) responderCliente(ctx *gin.Context, cliente *entity.Cliente, err error) {
	if err != nil {
		if errors.Is(err, entity.ErrClienteNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Cliente not found"})
			return
		}
		log.Printf("Error buscando cliente: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, cliente)
}

type clienteBody struct {
	Nombre    string `json:"nombre" binding:"required"`
	Apellido  string `json:"apellido"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	IDUsuario int    `json:"id_usuario"`
}

// Crear registra un cliente nuevo
func (c *ClienteController) Crear(ctx *gin.Context) {
	var body clienteBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}

	cliente := &entity.Cliente{
		Nombre:    body.Nombre,
		Apellido:  body.Apellido,
		Telefono:  body.Telefono,
		Direccion: body.Direccion,
		IDUsuario: body.IDUsuario,
	}
	if err := c.clientes.Crear(ctx.Request.Context(), sesion(ctx), cliente); err != nil {
		log.Printf("Error creando cliente: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"status": "created"})
}

// Actualizar modifica un cliente existente
func (c *ClienteController) Actualizar(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var body clienteBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}

	cliente := &entity.Cliente{
		IDCliente: id,
		Nombre:    body.Nombre,
		Apellido:  body.Apellido,
		Telefono:  body.Telefono,
		Direccion: body.Direccion,
		IDUsuario: body.IDUsuario,
	}
	if err := c.clientes.Actualizar(ctx.Request.Context(), sesion(ctx), cliente); err != nil {
		log.Printf("Error actualizando cliente %d: %v", id, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"id_cliente": id})
}
