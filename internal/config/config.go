// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultAPIBaseURL is used when API_BASE_URL is unset.
const DefaultAPIBaseURL = "https://invoice-generator-fix.onrender.com/"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	API    APIConfig
	App    AppConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// APIConfig holds settings for the upstream invoicing API.
type APIConfig struct {
	BaseURL string
	Timeout int // seconds, per request
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env string
	Dev bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		API: APIConfig{
			BaseURL: normalizeBaseURL(getEnv("API_BASE_URL", DefaultAPIBaseURL)),
			Timeout: getEnvInt("API_TIMEOUT", 15),
		},
		App: AppConfig{
			Env: getEnv("ENV", "development"),
			Dev: getEnvBool("DEV", true),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// normalizeBaseURL guarantees a single trailing slash so path joining stays predictable.
func normalizeBaseURL(u string) string {
	return strings.TrimRight(u, "/") + "/"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
