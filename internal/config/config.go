// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Notification modes accepted by NOTIFY_MODE.
const (
	NotifyInline = "inline"
	NotifyQueue  = "queue"
)

// Config holds all configuration values for the API server and worker.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"3333"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// "*" allows all. Set CORS_ORIGINS to a comma-separated list to narrow it.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	// PublicBaseURL is where clients reach the API; confirmation links are
	// built from it.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3333"`

	Mail   Mail
	Notify Notify
}

// Mail configures the outbound email transport and content.
type Mail struct {
	Locale       string `env:"MAIL_LOCALE" envDefault:"pt-BR"`
	FromName     string `env:"MAIL_FROM_NAME" envDefault:"Equipe Plann.er"`
	FromAddress  string `env:"MAIL_FROM_ADDRESS" envDefault:"oi@plann.er"`
	Transport    string `env:"MAIL_TRANSPORT" envDefault:"log"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
}

// Notify configures how confirmation emails leave the request path.
type Notify struct {
	// Mode is "inline" (send during the request) or "queue" (hand to the worker).
	Mode        string `env:"NOTIFY_MODE" envDefault:"inline"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Concurrency int    `env:"WORKER_CONCURRENCY" envDefault:"10"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming any required variable that is missing or any value
// that cannot be parsed.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	switch cfg.Notify.Mode {
	case NotifyInline, NotifyQueue:
	default:
		return Config{}, fmt.Errorf("config: NOTIFY_MODE must be %q or %q, got %q", NotifyInline, NotifyQueue, cfg.Notify.Mode)
	}

	return cfg, nil
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Worker is the subset of configuration the email worker needs. It does not
// touch the database, so DATABASE_URL is not required.
type Worker struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Mail     Mail
	Notify   Notify
}

// LoadWorker reads the worker configuration from environment variables.
func LoadWorker() (Worker, error) {
	cfg, err := env.ParseAs[Worker]()
	if err != nil {
		return Worker{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
