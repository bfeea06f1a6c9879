// backend/internal/platform/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from its environment.
// Optional integrations (Redis, RabbitMQ, SendGrid) stay disabled when
// their variables are empty.
type Config struct {
	Port string

	// DatabaseURL is the Postgres DSN. When empty and DBURLSecretName is
	// set, the DSN is fetched from Secret Manager at boot.
	DatabaseURL     string
	DBURLSecretName string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	AMQPURL string

	SendGridAPIKey string
	MailFrom       string

	JWTSecret string

	CORSOrigin      string
	ShutdownTimeout time.Duration
}

// Load reads .env (best-effort) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		DBURLSecretName: getenv("DB_URL_SECRET", ""),
		RedisAddr:       getenv("REDIS_ADDR", ""),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		CacheTTL:        secenv("CACHE_TTL_SECONDS", 300),
		AMQPURL:         getenv("AMQP_URL", ""),
		SendGridAPIKey:  getenv("SENDGRID_API_KEY", ""),
		MailFrom:        getenv("MAIL_FROM", "no-reply@marketplace.local"),
		JWTSecret:       getenv("JWT_SECRET", ""),
		CORSOrigin:      getenv("CORS_ORIGIN", "*"),
		ShutdownTimeout: secenv("SHUTDOWN_TIMEOUT_SECONDS", 25),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func secenv(key string, fallback int) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Second
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("[config] invalid %s=%q, using %ds", key, raw, fallback)
		return time.Duration(fallback) * time.Second
	}
	return time.Duration(n) * time.Second
}
