package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// EnableFallbackStore wires the process-wide in-memory store as a
	// write fallback behind the durable backend.
	EnableFallbackStore bool
}

func Load() (Config, error) {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "eventmesh"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName:         service,
		HTTPPort:            port,
		PostgresDSN:         os.Getenv("POSTGRES_DSN"),
		EnableFallbackStore: envBool("ENABLE_FALLBACK_STORE", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
