package config

import (
	"os"
	"strconv"
	"time"
)

// WeatherConfig holds settings for the upstream OpenWeatherMap API.
type WeatherConfig struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	MaxRedirects int
}

// TracingConfig holds the OpenTelemetry settings the application reads itself.
// Exporter endpoints and samplers are still taken from the standard OTEL_* variables.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. The API key is never hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	LogLevel string
	Weather  WeatherConfig
	Tracing  TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Weather: WeatherConfig{
			APIKey:       getEnv("OPENWEATHER_API_KEY", ""),
			BaseURL:      getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
			Timeout:      time.Duration(getEnvInt("WEATHER_TIMEOUT_SEC", 10)) * time.Second,
			MaxRedirects: getEnvInt("WEATHER_MAX_REDIRECTS", 30),
		},
		Tracing: TracingConfig{
			Disabled:    getEnvBool("OTEL_SDK_DISABLED", false),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "weatherapp"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
