package main

import (
	"context"
	"log"

	apiConfig "restaurante/src/api/config"
	catalogoUseCase "restaurante/src/catalogo/application/usecase"
	catalogoClient "restaurante/src/catalogo/infrastructure/client"
	catalogoController "restaurante/src/catalogo/infrastructure/controller"
	clienteCache "restaurante/src/cliente/infrastructure/cache"
	clienteClient "restaurante/src/cliente/infrastructure/client"
	clienteController "restaurante/src/cliente/infrastructure/controller"
	"restaurante/src/shared/domain/session"
	sharedConfig "restaurante/src/shared/infrastructure/config"
	ventasUseCase "restaurante/src/ventas/application/usecase"
	ventasClient "restaurante/src/ventas/infrastructure/client"
	ventasController "restaurante/src/ventas/infrastructure/controller"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("🚀 Restaurante POS Service - Iniciando...")

	cfg := sharedConfig.Load()

	// Configurar el router con Gin
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configurar Prometheus metrics si está habilitado
	if cfg.PrometheusEnabled {
		log.Println("Registering /metrics endpoint")
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	} else {
		log.Println("Prometheus metrics disabled")
	}

	// Configurar GZIP, request-id y otros middlewares compartidos
	sharedConfig.SetupSharedMiddleware(router, sharedConfig.DefaultSharedConfig())

	// API v1 grupo de rutas
	v1 := router.Group("/api/v1")

	// Configurar el módulo API (health check)
	apiCfg := apiConfig.DefaultAPIConfig()
	apiCfg.Version = "1.0.0"
	apiCfg.UpstreamBaseURL = cfg.UpstreamBaseURL
	apiConfig.SetupAPIModule(router, v1, apiCfg)

	setupModules(v1, cfg)

	// Iniciar el servidor
	log.Printf("✅ Servidor Restaurante POS iniciado en http://localhost:%s", cfg.Port)
	log.Printf("✅ Health endpoint: GET http://localhost:%s/health", cfg.Port)
	router.Run(":" + cfg.Port)
}

// setupModules configura los módulos ventas, clientes y catálogo
func setupModules(v1 *gin.RouterGroup, cfg *sharedConfig.Config) {
	log.Println("Configurando módulos...")

	// Clientes HTTP contra el backend REST
	ventasCl := ventasClient.NewVentasClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	clientesCl := clienteClient.NewClienteClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	puestosCl := catalogoClient.NewPuestosClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	tiposCl := catalogoClient.NewTiposClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	// Cache de nombres de cliente para etiquetas de candidatas.
	// El warm es best-effort: sin backend arriba el cache queda vacío
	// y los nombres se resuelven por id bajo demanda.
	nombres := clienteCache.NewNombreCache(clientesCl)
	if err := nombres.Warm(context.Background(), session.Context{}); err != nil {
		log.Printf("⚠️  Advertencia: cache de nombres sin precargar: %v", err)
	}

	// Casos de uso
	exportUC := ventasUseCase.NewExportTicketUseCase(ventasCl, cfg.DownloadDir)
	savePuestoUC := catalogoUseCase.NewSavePuestoUseCase(puestosCl)
	saveTipoUC := catalogoUseCase.NewSaveTipoUseCase(tiposCl)

	transform := ventasUseCase.ReservaDisplayTransform{
		Enabled: cfg.ReservaOffsetEnabled,
		Days:    cfg.ReservaOffsetDays,
		Hours:   cfg.ReservaOffsetHours,
	}

	// Controladores
	ventasCtrl := ventasController.NewVentasController(ventasCl, nombres, exportUC, transform)
	clientesCtrl := clienteController.NewClienteController(clientesCl)
	catalogoCtrl := catalogoController.NewCatalogoController(puestosCl, tiposCl, savePuestoUC, saveTipoUC)

	// Registrar rutas
	ventasCtrl.RegisterRoutes(v1)
	clientesCtrl.RegisterRoutes(v1)
	catalogoCtrl.RegisterRoutes(v1)

	log.Println("Módulos configurados exitosamente")
}
