package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Bootstrap admin created at startup if missing.
	AdminEmail    string
	AdminPassword string

	// Import queue (RabbitMQ). Empty AMQPURL disables async imports.
	AMQPURL     string
	ImportQueue string
	UploadDir   string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=forecast port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AMQPURL:       getEnv("AMQP_URL", ""),
		ImportQueue:   getEnv("IMPORT_QUEUE", "forecast.imports"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set, refusing to start")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("[WARN] ADMIN_EMAIL/ADMIN_PASSWORD not set, admin bootstrap will be skipped")
	}
	if cfg.AMQPURL == "" {
		log.Println("[WARN] AMQP_URL not set, imports run inline only")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
