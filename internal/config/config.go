package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// Documents are split across three buckets by category.
type MinIOConfig struct {
	Endpoint       string
	AccessKey      string
	SecretKey      string
	WordBucket     string
	ExcelBucket    string
	TemplateBucket string
	UseSSL         bool
}

// AuthConfig holds settings for password auth and document-access tokens.
// TokenSecret is injected into the token codec at construction; rotating it
// invalidates all outstanding grants.
type AuthConfig struct {
	TokenSecret string
	GrantTTL    time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	ExternalURL      string
	Port             string
	TemplateFilename string
	Database         DatabaseConfig
	MinIO            MinIOConfig
	Auth             AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		ExternalURL:      getEnv("EXTERNAL_URL", "http://localhost:8080"),
		Port:             getEnv("PORT", "8080"), // default only for non-sensitive value
		TemplateFilename: getEnv("TEMPLATE_FILENAME", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:       getEnv("MINIO_ENDPOINT", ""),
			AccessKey:      getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:      getEnv("MINIO_SECRET_KEY", ""),
			WordBucket:     getEnv("MINIO_WORD_BUCKET", "word-documents"),
			ExcelBucket:    getEnv("MINIO_EXCEL_BUCKET", "excel-files"),
			TemplateBucket: getEnv("MINIO_TEMPLATE_BUCKET", "std-contents"),
			UseSSL:         getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("TOKEN_SECRET", ""),
			GrantTTL:    time.Duration(getEnvInt("GRANT_TTL_SEC", 3600)) * time.Second,
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
