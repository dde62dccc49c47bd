package config

import (
	"os"
)

type Config struct {
	DBDriver         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	SessionSecret    string
	GinMode          string
	UploadDir        string
	UploadBaseURL    string
	DevAdminEmail    string
	DevAdminPassword string
}

func Load() *Config {
	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "swarmops"),
		DBPassword:       getEnv("DB_PASSWORD", "swarmops"),
		DBName:           getEnv("DB_NAME", "swarmops"),
		SessionSecret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		UploadBaseURL:    getEnv("UPLOAD_BASE_URL", "/uploads"),
		DevAdminEmail:    getEnv("DEV_ADMIN_EMAIL", ""),
		DevAdminPassword: getEnv("DEV_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
