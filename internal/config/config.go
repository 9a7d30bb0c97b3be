package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	HTTPAddr string

	// Persistence backend for the gateway.
	Backend      string // file | postgres
	PostgresDSN  string
	SetsFile     string
	CommentsFile string
	CatalogFile  string

	// Auth
	AuthServiceURL string
	LocalAuthToken string

	// Page size for the personal-record history scan.
	PRPageSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8088"),
		Backend:        getEnv("STORAGE_BACKEND", "file"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		SetsFile:       getEnv("SETS_FILE", "data/sets.json"),
		CommentsFile:   getEnv("COMMENTS_FILE", "data/day_comments.json"),
		CatalogFile:    getEnv("CATALOG_FILE", "data/catalog.json"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		LocalAuthToken: getEnv("LOCAL_AUTH_TOKEN", "MOCK-TOKEN"),
		PRPageSize:     getEnvInt("PR_PAGE_SIZE", 1000),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend == "postgres" && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.Backend == "file" && (c.SetsFile == "" || c.CommentsFile == "" || c.CatalogFile == "") {
		return errors.New("file storage requires SETS_FILE, COMMENTS_FILE and CATALOG_FILE to be set")
	}
	if c.Backend != "file" && c.Backend != "postgres" {
		return errors.New("STORAGE_BACKEND must be one of: file, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	if c.PRPageSize < 1 {
		return errors.New("PR_PAGE_SIZE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
