package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config собирает все настройки сервиса из окружения.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	// GoogleEnabled is an explicit switch: when true, missing Google
	// credentials are a startup error instead of a silently disabled login.
	GoogleEnabled      bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	FrontendURL        string

	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as duration or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load загружает конфигурацию из .env файла или переменных окружения.
func Load() *Config {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret: os.Getenv("JWT_SECRET"), // no hardcoded default on purpose
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		GoogleEnabled:      getEnvBool("GOOGLE_AUTH_ENABLED", false),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:8080/auth/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3001"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Validate проверяет обязательные параметры. Сервис не должен стартовать
// без секрета подписи токенов.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	if c.GoogleEnabled {
		if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
			return errors.New("GOOGLE_AUTH_ENABLED is true but GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET are not set")
		}
	}
	return nil
}
