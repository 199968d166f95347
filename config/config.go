package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	JWTExpiration  time.Duration
	ServerPort     string
	AllowedOrigins []string
	WebhookTimeout time.Duration
}

func Load() *Config {
	// Optional .env; real deployments set the environment directly.
	godotenv.Load()

	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", "postgresql://postgres@localhost:5432/nomina"),
		JWTSecret:      getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTExpiration:  24 * time.Hour,
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5678,http://localhost:8080"), ","),
		WebhookTimeout: 5 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
