package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	CMS      CMSConfig
	Mail     MailConfig
	Contact  ContactConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// CMSConfig holds content store (headless CMS) configuration
type CMSConfig struct {
	BaseURL    string
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	Timeout    int
}

// MailConfig holds transactional email provider configuration
type MailConfig struct {
	APIBase   string
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   int
	Enabled   bool
}

// ContactConfig holds the business contact data inquiries route to
type ContactConfig struct {
	Phone    string
	WhatsApp string
	Email    string
}

// PostgresConfig holds the optional inquiry-log database configuration
type PostgresConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// RedisConfig holds the optional content-cache configuration
type RedisConfig struct {
	Addr       string
	Password   string
	TTLSeconds int
	Enabled    bool
}

// CatalogConfig holds catalog listing limits
type CatalogConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		CMS: CMSConfig{
			BaseURL:    getEnv("CMS_BASE_URL", ""),
			ProjectID:  getEnv("CMS_PROJECT_ID", ""),
			Dataset:    getEnv("CMS_DATASET", "production"),
			APIVersion: getEnv("CMS_API_VERSION", "2024-01-01"),
			Token:      getEnv("CMS_TOKEN", ""),
			Timeout:    getEnvAsInt("CMS_TIMEOUT", 15),
		},
		Mail: MailConfig{
			APIBase:   getEnv("MAIL_API_BASE", "https://api.resend.com"),
			APIKey:    getEnv("MAIL_API_KEY", ""),
			FromEmail: getEnv("MAIL_FROM_EMAIL", "inquiries@limerproperties.com"),
			FromName:  getEnv("MAIL_FROM_NAME", "Limer Properties"),
			Timeout:   getEnvAsInt("MAIL_TIMEOUT", 30),
			Enabled:   getEnv("MAIL_API_KEY", "") != "",
		},
		Contact: ContactConfig{
			Phone:    getEnv("CONTACT_PHONE", ""),
			WhatsApp: getEnv("CONTACT_WHATSAPP", ""),
			Email:    getEnv("CONTACT_EMAIL", ""),
		},
		Postgres: PostgresConfig{
			DSN:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			Enabled:            getEnv("DATABASE_URL", "") != "",
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", ""),
			Password:   getEnv("REDIS_PASSWORD", ""),
			TTLSeconds: getEnvAsInt("REDIS_TTL_SECONDS", 300),
			Enabled:    getEnv("REDIS_ADDR", "") != "",
		},
		Catalog: CatalogConfig{
			DefaultLimit: getEnvAsInt("CATALOG_DEFAULT_LIMIT", 24),
			MaxLimit:     getEnvAsInt("CATALOG_MAX_LIMIT", 100),
		},
	}

	if cfg.CMS.BaseURL == "" && cfg.CMS.ProjectID == "" {
		return nil, fmt.Errorf("content store is not configured: set CMS_BASE_URL or CMS_PROJECT_ID")
	}

	return cfg, nil
}

// QueryURL returns the content store's query endpoint for this dataset.
func (c *CMSConfig) QueryURL() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
	}
	return fmt.Sprintf("%s/v%s/data/query/%s", base, c.APIVersion, c.Dataset)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}
