package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBDriver string
	DBSource string

	UploadDir         string
	MaxUploadBytes    int64
	AllowedImageTypes []string

	SessionSecret string
	SessionTTL    time.Duration

	DevAdminEmail    string
	DevAdminPassword string
	AdminEmail       string
	AdminPassword    string

	RedisAddr string

	EventsBroker string
	RabbitMQURL  string
	KafkaBrokers []string

	GinMode       string
	SecureCookies bool
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "app.db"),
		UploadDir:         getEnv("UPLOAD_DIR", "static/uploads"),
		MaxUploadBytes:    getInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
		AllowedImageTypes: splitCSV(getEnv("ALLOWED_IMAGE_TYPES", "png,jpg,jpeg,gif,webp")),
		SessionSecret:     getEnv("SESSION_SECRET", "super-secret-key-change-me"),
		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
		DevAdminEmail:     strings.ToLower(getEnv("DEV_ADMIN_EMAIL", "developer@dev.com")),
		DevAdminPassword:  getEnv("DEV_ADMIN_PASSWORD", "vivekcn"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		EventsBroker:      getEnv("EVENTS_BROKER", "none"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		GinMode:           getEnv("GIN_MODE", "release"),
		SecureCookies:     getEnv("COOKIE_SECURE", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToLower(strings.TrimSpace(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
