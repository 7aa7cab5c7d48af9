package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	DatabaseURL       string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	OTLPEndpoint string
}

// ErrMissingDatabaseURL aborts startup before the server begins serving.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

// Load loads configuration from environment variables and .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "cube"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8000"),
		DatabaseURL:       strings.TrimSpace(getenv("DATABASE_URL", "")),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONNS", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONNS", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME_SECONDS", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_SECONDS", 300),
		OTLPEndpoint:      getenv("OTLP_ENDPOINT", "localhost:4317"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
