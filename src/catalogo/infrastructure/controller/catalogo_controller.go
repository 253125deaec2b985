package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurante/src/catalogo/application/usecase"
	"restaurante/src/catalogo/domain/entity"
	"restaurante/src/catalogo/domain/port"
	"restaurante/src/shared/domain/session"
)

// CatalogoController maneja el CRUD de puestos y tipos de producto
type CatalogoController struct {
	puestos      port.PuestoRepository
	tipos        port.TipoRepository
	savePuestoUC *usecase.SavePuestoUseCase
	saveTipoUC   *usecase.SaveTipoUseCase
}

// NewCatalogoController crea una nueva instancia del controlador
func NewCatalogoController(
	puestos port.PuestoRepository,
	tipos port.TipoRepository,
	savePuestoUC *usecase.SavePuestoUseCase,
	saveTipoUC *usecase.SaveTipoUseCase,
) *CatalogoController {
	return &CatalogoController{
		puestos:      puestos,
		tipos:        tipos,
		savePuestoUC: savePuestoUC,
		saveTipoUC:   saveTipoUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *CatalogoController) RegisterRoutes(router *gin.RouterGroup) {
	puestos := router.Group("/puestos")
	{
		puestos.GET("", c.ListarPuestos)
		puestos.POST("", c.CrearPuesto)
		puestos.PUT("/:id", c.ActualizarPuesto)
		puestos.DELETE("/:id", c.EliminarPuesto)
	}

	tipos := router.Group("/tipos")
	{
		tipos.GET("", c.ListarTipos)
		tipos.POST("", c.CrearTipo)
		tipos.PUT("/:id", c.ActualizarTipo)
		tipos.DELETE("/:id", c.EliminarTipo)
	}

	log.Println("Rutas Catálogo disponibles:")
	log.Println("  GET/POST         /api/v1/puestos")
	log.Println("  PUT/DELETE       /api/v1/puestos/:id")
	log.Println("  GET/POST         /api/v1/tipos")
	log.Println("  PUT/DELETE       /api/v1/tipos/:id")
}

func sesion(ctx *gin.Context) session.Context {
	return session.FromAuthHeader(ctx.GetHeader("Authorization"))
}

type nombreBody struct {
	Nombre string `json:"nombre" binding:"required"`
}

// responderGuardado mapea los errores de crear/renombrar a códigos HTTP.
// El duplicado puede venir del chequeo consultivo o del 409 del backend;
// para el caller es el mismo conflicto.
func responderGuardado(ctx *gin.Context, err error, okStatus int) {
	switch {
	case err == nil:
		ctx.JSON(okStatus, gin.H{"status": "ok"})
	case errors.Is(err, entity.ErrNombreRequerido):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNombreDuplicado):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Error guardando item de catálogo: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// ListarPuestos devuelve todos los puestos
func (c *CatalogoController) ListarPuestos(ctx *gin.Context) {
	puestos, err := c.puestos.Listar(ctx.Request.Context(), sesion(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": puestos, "total_count": len(puestos)})
}

// CrearPuesto registra un puesto nuevo
func (c *CatalogoController) CrearPuesto(ctx *gin.Context) {
	var body nombreBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}
	responderGuardado(ctx, c.savePuestoUC.Crear(ctx.Request.Context(), sesion(ctx), body.Nombre), http.StatusCreated)
}

// ActualizarPuesto renombra un puesto
func (c *CatalogoController) ActualizarPuesto(ctx *gin.Context) {
	c.actualizar(ctx, func(reqCtx context.Context, sess session.Context, id int, nombre string) error {
		return c.savePuestoUC.Actualizar(reqCtx, sess, id, nombre)
	})
}

// EliminarPuesto borra un puesto
func (c *CatalogoController) EliminarPuesto(ctx *gin.Context) {
	c.eliminar(ctx, c.puestos.Eliminar)
}

// ListarTipos devuelve todos los tipos de producto
func (c *CatalogoController) ListarTipos(ctx *gin.Context) {
	tipos, err := c.tipos.Listar(ctx.Request.Context(), sesion(ctx))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"items": tipos, "total_count": len(tipos)})
}

// CrearTipo registra un tipo nuevo
func (c *CatalogoController) CrearTipo(ctx *gin.Context) {
	var body nombreBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}
	responderGuardado(ctx, c.saveTipoUC.Crear(ctx.Request.Context(), sesion(ctx), body.Nombre), http.StatusCreated)
}

// ActualizarTipo renombra un tipo
func (c *CatalogoController) ActualizarTipo(ctx *gin.Context) {
	c.actualizar(ctx, func(reqCtx context.Context, sess session.Context, id int, nombre string) error {
		return c.saveTipoUC.Actualizar(reqCtx, sess, id, nombre)
	})
}

// EliminarTipo borra un tipo
func (c *CatalogoController) EliminarTipo(ctx *gin.Context) {
	c.eliminar(ctx, c.tipos.Eliminar)
}

func (c *CatalogoController) actualizar(ctx *gin.Context, save func(context.Context, session.Context, int, string) error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var body nombreBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}
	responderGuardado(ctx, save(ctx.Request.Context(), sesion(ctx), id, body.Nombre), http.StatusOK)
}

func (c *CatalogoController) eliminar(ctx *gin.Context, del func(context.Context, session.Context, int) error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if err := del(ctx.Request.Context(), sesion(ctx), id); err != nil {
		log.Printf("Error eliminando item %d de catálogo: %v", id, err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
