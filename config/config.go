package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/CiscoDiscoMisco-source/auth-service/pkg/constant"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	// Standard-role backend connection; required.
	DBURL string
	// Elevated-role backend connection; optional. When unset or unreachable
	// the process runs degraded and admin operations fail closed.
	AdminDBURL string

	// External identity backend. Empty IdentityURL disables the external
	// login path entirely.
	IdentityURL    string
	IdentityAPIKey string

	// Shared with the external identity backend so externally issued
	// sessions verify locally.
	JWTSecret string

	AccessExpiryMin  int
	RefreshExpiryMin int

	ConnectMaxAttempts int
	ConnectRetryDelay  time.Duration
}

func Load() *Config {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DBURL:              mustGetEnv("DB_URL"),
		AdminDBURL:         getEnv("ADMIN_DB_URL", ""),
		IdentityURL:        getEnv("IDENTITY_URL", ""),
		IdentityAPIKey:     getEnv("IDENTITY_API_KEY", ""),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", constant.DefaultAccessExpiryMinutes),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", constant.DefaultRefreshExpiryMinutes),
		ConnectMaxAttempts: getEnvAsInt("CONNECT_MAX_ATTEMPTS", constant.DefaultConnectMaxAttempts),
		ConnectRetryDelay:  time.Duration(getEnvAsInt("CONNECT_RETRY_DELAY_SECONDS", int(constant.DefaultConnectRetryDelay/time.Second))) * time.Second,
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Fatalf("Invalid integer value for %s: %s", key, valStr)
	}

	return val
}
