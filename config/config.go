package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Session  SessionConfig
	CORS     CORSConfig
	Uploads  UploadConfig
	S3       S3Config
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type AdminConfig struct {
	// PasswordHash is the bcrypt hash of the dashboard password.
	PasswordHash string
	TokenSecret  string
	TokenExpiry  time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type UploadConfig struct {
	Dir        string
	MaxSizeMB  int64
	PublicPath string // URL prefix stored on items, e.g. /uploads
}

type S3Config struct {
	Enabled         bool
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "bigsofa"),
			Password: getEnv("DB_PASSWORD", "bigsofa"),
			DBName:   getEnv("DB_NAME", "bigsofa"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenSecret:  getEnv("ADMIN_TOKEN_SECRET", "change-me"),
			TokenExpiry:  parseDuration(getEnv("ADMIN_TOKEN_EXPIRY", "12h")),
		},
		Session: SessionConfig{
			TTL: parseDuration(getEnv("SESSION_TTL", "24h")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		},
		Uploads: UploadConfig{
			Dir:        getEnv("UPLOADS_DIR", "./uploads"),
			MaxSizeMB:  int64(getEnvInt("UPLOADS_MAX_SIZE_MB", 5)),
			PublicPath: getEnv("UPLOADS_PUBLIC_PATH", "/uploads"),
		},
		S3: S3Config{
			Enabled:         getEnvBool("AWS_S3_ENABLED", false),
			Region:          getEnv("AWS_REGION", "af-south-1"),
			Bucket:          getEnv("AWS_S3_BUCKET", "bigsofa-uploads"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return b
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 24h", s)
		return 24 * time.Hour
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
