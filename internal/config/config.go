// Package config carga la configuración del bot desde variables de entorno.
// Se usa envconfig para mapear las variables a los campos de la estructura.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contiene TODAS las opciones de la aplicación.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`

	// --- API del ledger ---
	// URL base del backend que administra familias, gastos y pagos.
	APIBaseURL string `envconfig:"API_BASE_URL" required:"true"`
	// Timeout de cada llamada HTTP al backend. No hay reintentos:
	// un timeout es un resultado terminal para ese paso.
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Bot runtime ---
	// Cuántos updates se procesan en paralelo. Sin límite, "una goroutine
	// por update" termina en fuga de memoria cuando hay flood.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Timeout del long polling (segundos)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Rate limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Jobs ---
	// Expresión cron del sondeo de disponibilidad del backend.
	HealthProbeSchedule string `envconfig:"HEALTH_PROBE_SCHEDULE" default:"@every 5m"`
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL no está definida")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT debe ser > 0")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT debe ser > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS debe ser > 0")
	}
	return nil
}

// Load lee las variables de entorno y llena la estructura Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("no se pudo cargar la configuración: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
