package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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
	ConnMaxIdleSec     int
	PingTimeoutSec     int
	AutoMigrate        bool
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GCSConfig holds Google Cloud Storage settings.
type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

// StorageConfig selects and configures the blob backend.
type StorageConfig struct {
	Backend string // "minio" or "gcs"
	// PublicBaseURL prefixes object keys to build file URLs. When empty the backend's own URL is used.
	PublicBaseURL string
	// SignedURLTTLSec bounds the download links handed out while PublicBaseURL is empty.
	SignedURLTTLSec int
	MinIO           MinIOConfig
	GCS             GCSConfig
}

// AuthConfig holds token and password hashing settings.
type AuthConfig struct {
	JWTSecret       string
	ExpirationHours int
	BcryptCost      int
	Pepper          string
}

// ProviderConfig holds credentials for the AI providers.
type ProviderConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string
	GroqBaseURL  string
	ImageAPIKey  string
	ImageModel   string
	ImageBaseURL string
	TimeoutSec   int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost            string
	Port               string
	LogLevel           string
	CachePurgeSchedule string
	Database           DatabaseConfig
	Storage            StorageConfig
	Auth               AuthConfig
	Providers          ProviderConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:            getEnv("APP_HOST", "localhost:8080"),
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CachePurgeSchedule: getEnv("CACHE_PURGE_SCHEDULE", "@every 10m"),
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
			ConnMaxIdleSec:     getEnvInt("DB_CONN_MAX_IDLE_SEC", 120),
			PingTimeoutSec:     getEnvInt("DB_PING_TIMEOUT_SEC", 5),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Storage: StorageConfig{
			Backend:         strings.ToLower(getEnv("STORAGE_BACKEND", "minio")),
			PublicBaseURL:   getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			SignedURLTTLSec: getEnvInt("STORAGE_SIGNED_URL_TTL_SEC", 900),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
			GCS: GCSConfig{
				Bucket:          getEnv("GCS_BUCKET", ""),
				ProjectID:       getEnv("GCS_PROJECT_ID", ""),
				CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			},
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", ""),
			ExpirationHours: getEnvInt("JWT_EXPIRATION_HOURS", 24),
			BcryptCost:      getEnvInt("BCRYPT_COST", 12),
			Pepper:          getEnv("PASSWORD_PEPPER", ""),
		},
		Providers: ProviderConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
			GroqModel:    getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			GroqBaseURL:  getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			ImageAPIKey:  getEnv("IMAGE_API_KEY", ""),
			ImageModel:   getEnv("IMAGE_MODEL", "dall-e-3"),
			ImageBaseURL: getEnv("IMAGE_BASE_URL", "https://api.openai.com/v1"),
			TimeoutSec:   getEnvInt("PROVIDER_TIMEOUT_SEC", 120),
		},
	}
}

// Validate reports the first required setting that is missing or out of range.
// It is called once at startup so a misconfigured process never serves traffic.
func (c *AppConfig) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DB_HOST", c.Database.Host},
		{"DB_USER", c.Database.User},
		{"DB_NAME", c.Database.Name},
		{"JWT_SECRET", c.Auth.JWTSecret},
		{"GEMINI_API_KEY", c.Providers.GeminiAPIKey},
		{"GROQ_API_KEY", c.Providers.GroqAPIKey},
		{"IMAGE_API_KEY", c.Providers.ImageAPIKey},
	}

	switch c.Storage.Backend {
	case "minio":
		required = append(required,
			struct{ name, value string }{"MINIO_ENDPOINT", c.Storage.MinIO.Endpoint},
			struct{ name, value string }{"MINIO_ACCESS_KEY", c.Storage.MinIO.AccessKey},
			struct{ name, value string }{"MINIO_SECRET_KEY", c.Storage.MinIO.SecretKey},
			struct{ name, value string }{"MINIO_BUCKET", c.Storage.MinIO.Bucket},
		)
	case "gcs":
		required = append(required,
			struct{ name, value string }{"GCS_BUCKET", c.Storage.GCS.Bucket},
		)
	default:
		return fmt.Errorf("STORAGE_BACKEND must be minio or gcs, got %q", c.Storage.Backend)
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if c.Auth.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1, got %d", c.Auth.ExpirationHours)
	}
	if c.Auth.BcryptCost < 10 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST out of range: %d (must be 10-14)", c.Auth.BcryptCost)
	}
	return nil
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
