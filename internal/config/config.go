package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Auction settlement sweep
	SweepInterval time.Duration

	// Image uploads
	UploadsDir string

	// Admin seeding
	AdminEmail    string
	AdminPassword string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "electrobid"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "12h"), 12*time.Hour),

		SweepInterval: parseDuration(getEnv("SWEEP_INTERVAL", "1m"), time.Minute),

		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@electrobid.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
