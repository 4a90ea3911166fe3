// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName    string
	AppVersion string
	HTTPAddr   string
	LogLevel   string

	GinReleaseMode       bool
	DashboardRevenueDays int

	DBType     string
	DBPath     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load loads configuration from environment variables and a .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:    getenv("APP_SERVICE", "pos"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		LogLevel:   getenv("LOG_LEVEL", "info"),

		GinReleaseMode:       getenvBool("GIN_RELEASE_MODE", false),
		DashboardRevenueDays: getenvInt("DASHBOARD_REVENUE_DAYS", 7),

		DBType:     getenv("DATABASE_TYPE", "sqlite"),
		DBPath:     getenv("DATABASE_PATH", "pos.db"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "pos"),
		DBUser:     getenv("DATABASE_USER", "pos"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),
	}
}

// Module wires configuration loading.
var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
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
