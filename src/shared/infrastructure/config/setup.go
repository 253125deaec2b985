package config

import (
	"restaurante/src/shared/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// SharedConfig contiene la configuración de los middlewares compartidos
type SharedConfig struct {
	EnableGzip          bool
	AlwaysTryDecompress bool
	GzipExcludedPaths   []string
	EnableRequestID     bool
}

// DefaultSharedConfig devuelve una configuración por defecto
func DefaultSharedConfig() SharedConfig {
	return SharedConfig{
		EnableGzip:          true,
		AlwaysTryDecompress: true,
		// Los tickets PDF ya van comprimidos y /metrics lo raspa Prometheus
		GzipExcludedPaths: []string{"/health", "/metrics", "/api/v1/ventas/ticket"},
		EnableRequestID:   true,
	}
}

// SetupSharedMiddleware configura los middlewares compartidos
func SetupSharedMiddleware(router *gin.Engine, config SharedConfig) {
	if config.EnableRequestID {
		router.Use(middleware.RequestID())
	}

	// Intentar descomprimir solicitudes entrantes con Content-Encoding: gzip
	if config.AlwaysTryDecompress {
		router.Use(middleware.GzipReader())
	}

	if config.EnableGzip {
		router.Use(middleware.GzipMiddleware(middleware.GzipOptions{
			ExcludedPaths: config.GzipExcludedPaths,
		}))
	}
}
