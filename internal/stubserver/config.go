package stubserver

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the stub server configuration, parsed from the environment.
type Config struct {
	Addr         string `env:"PAINEL_STUB_ADDR" envDefault:":8080"`
	DatabasePath string `env:"PAINEL_STUB_DB" envDefault:"painel-stub.sqlite"`
	SeedPath     string `env:"PAINEL_STUB_SEED"`
	JWTSecret    string `env:"PAINEL_STUB_JWT_SECRET" envDefault:"painel-stub-dev-secret"`
	BasePath     string `env:"PAINEL_STUB_BASE_PATH" envDefault:"/Admin/api"`
	CORSOrigin   string `env:"PAINEL_STUB_CORS_ORIGIN" envDefault:"http://localhost:5173"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads the stub server configuration from .env files and the
// environment.
func LoadConfig() (*Config, error) {
	// .env files fail silently when absent
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
