package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config contiene la configuración del servicio leída de variables de entorno
type Config struct {
	Port              string
	UpstreamBaseURL   string // base del backend REST (http://host:puerto)
	UpstreamTimeout   time.Duration
	DownloadDir       string // directorio donde se guardan los tickets PDF
	PrometheusEnabled bool

	// Ajuste cosmético de fecha/hora de reserva para display.
	// Deshabilitado por defecto; ver notas de diseño (parche de zona horaria).
	ReservaOffsetEnabled bool
	ReservaOffsetDays    int
	ReservaOffsetHours   int
}

// Load carga la configuración desde .env y variables de entorno
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using system environment variables")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		UpstreamBaseURL:   getEnv("BACKEND_BASE_URL", "http://localhost:9090"),
		UpstreamTimeout:   time.Duration(getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10)) * time.Second,
		DownloadDir:       getEnv("TICKET_DOWNLOAD_DIR", os.TempDir()),
		PrometheusEnabled: getEnv("PROMETHEUS_ENABLED", "false") == "true",

		ReservaOffsetEnabled: getEnv("RESERVA_DISPLAY_OFFSET_ENABLED", "false") == "true",
		ReservaOffsetDays:    getEnvAsInt("RESERVA_DISPLAY_OFFSET_DAYS", 2),
		ReservaOffsetHours:   getEnvAsInt("RESERVA_DISPLAY_OFFSET_HOURS", -6),
	}
}

// getEnv obtiene una variable de entorno o devuelve un valor por defecto
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}
