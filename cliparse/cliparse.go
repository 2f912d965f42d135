package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/danielhkuo/greenhand/classify"
	"github.com/danielhkuo/greenhand/db"
)

// DefaultSQLiteURL is used when DATABASE_TYPE is sqlite and no URL is given.
const DefaultSQLiteURL = "file:greenhand.db"

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DatabaseURL  string `env:"DATABASE_URL"`
	JWTSecret    string `env:"JWT_SECRET"`
	LogFormat    string `env:"LOG_FORMAT"`

	AI AIConfig `envPrefix:"AI_"`
}

// AIConfig holds the AI gateway settings.
type AIConfig struct {
	APIKey          string        `env:"API_KEY"`
	BaseURL         string        `env:"BASE_URL"`
	Model           string        `env:"MODEL"`
	Temperature     float64       `env:"TEMPERATURE" envDefault:"0.3"`
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"60s"`
	RateLimitStatus int           `env:"RATE_LIMIT_STATUS" envDefault:"429"`
	CreditsStatus   int           `env:"CREDITS_STATUS" envDefault:"402"`
}

// ClientConfig converts the AI settings for classify.NewClient.
func (c AIConfig) ClientConfig() classify.ClientConfig {
	return classify.ClientConfig{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

// StatusCodes returns the upstream statuses that mean rate limited and out of credits.
func (c AIConfig) StatusCodes() classify.StatusCodes {
	return classify.StatusCodes{
		RateLimited:      c.RateLimitStatus,
		CreditsExhausted: c.CreditsStatus,
	}
}

// ParseFlags reads the environment, then lets flags override it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment variables: %w", err)
	}

	fs := flag.NewFlagSet("greenhand", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "JWT signing secret (prefer env)")
	fs.StringVar(&cfg.AI.APIKey, "ai-key", cfg.AI.APIKey, "AI gateway API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	switch cfg.DatabaseType {
	case db.TypeSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLiteURL
		}
	case db.TypePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	return cfg, nil
}
