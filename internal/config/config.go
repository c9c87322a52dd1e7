package config

import (
	"os"
	"strconv"
)

type Config struct {
	// APP
	AppEnv string
	Port   string

	// Database
	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret string

	// Google Calendar
	GoogleAccessToken string
	DefaultCalendarID string
	DefaultTimezone   string
	ImportWindowDays  int

	// Admin login
	AdminUsername string
	AdminPassword string
}

func Load() (*Config, error) {
	cfg := &Config{
		// App
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "8001"),

		// DB
		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "bfse_db"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "secret123"),

		// Google Calendar
		GoogleAccessToken: getEnv("GOOGLE_ACCESS_TOKEN", ""),
		DefaultCalendarID: getEnv("GOOGLE_CALENDAR_ID", "primary"),
		DefaultTimezone:   getEnv("ORG_TIMEZONE", "Africa/Freetown"),
		ImportWindowDays:  getEnvInt("IMPORT_WINDOW_DAYS", 90),

		// Admin login
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme-2025"),
	}

	return cfg, nil
}

// getEnv returns environment variable or default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns int from env or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
