package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	userspostgres "github.com/Apurer/go-shop-api/internal/domains/users/adapters/persistence/postgres"
)

// listenAddr resolves the HTTP listen address from PORT.
func listenAddr() string {
	if v := os.Getenv("PORT"); v != "" {
		return ":" + v
	}
	return ":8080"
}

// sessionTTL resolves the login session lifetime from SESSION_TTL_HOURS.
func sessionTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS"))
	if raw == "" {
		return userspostgres.DefaultSessionTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return userspostgres.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
