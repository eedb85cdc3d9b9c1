package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment    string
	ServerPort     string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	AllowedOrigins []string
	CacheTTL       time.Duration
	RedisAddr      string
	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	SeedData       bool
}

func Load() (*Config, error) {
	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnvInt("DB_PORT", 5432),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "grammar_master"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		CacheTTL:       time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@grammarmaster.app"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Grammar Master"),
		SeedData:       getEnv("SEED_DATA", "false") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
