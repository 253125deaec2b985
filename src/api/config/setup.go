package config

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIConfig contiene la configuración del módulo API
type APIConfig struct {
	Version         string
	UpstreamBaseURL string
}

// DefaultAPIConfig devuelve una configuración por defecto
func DefaultAPIConfig() APIConfig {
	return APIConfig{Version: "dev"}
}

// SetupAPIModule registra health check en la raíz y bajo /api/v1
func SetupAPIModule(router *gin.Engine, v1 *gin.RouterGroup, cfg APIConfig) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"version":  cfg.Version,
			"upstream": cfg.UpstreamBaseURL,
		})
	}

	router.GET("/health", health)
	v1.GET("/health", health)
}
