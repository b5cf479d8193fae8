package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Redis
	RedisURL  string        `env:"REDIS_URL"  envDefault:"redis://localhost:6379"`
	ResultTTL time.Duration `env:"RESULT_TTL" envDefault:"24h"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Statement processing
	DateDayFirst    bool `env:"DATE_DAY_FIRST"     envDefault:"true"`
	MaxDateAgeYears int  `env:"MAX_DATE_AGE_YEARS" envDefault:"100"`
	TopTransactions int  `env:"TOP_TRANSACTIONS"   envDefault:"10"`
}

// Load loads configuration from environment variables. A .env file in
// the working directory is read first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
