package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP listen port
	Port string `env:"PORT" envDefault:"5260"`

	// Rate store: "postgres" in production, "sqlite3" for local development
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/hotelrates?sslmode=disable"`

	// Comma-separated list of allowed CORS origins
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Result-size cap for the detail query; rows past it are dropped
	DetailRowCap int `env:"DETAIL_ROW_CAP" envDefault:"1000"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
