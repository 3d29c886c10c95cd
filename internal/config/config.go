package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	CORSOrigins    string
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is not set")
)

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// win over values from the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:           getenv("SHOP_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       72 * time.Hour,
		RequestTimeout: 10 * time.Second,
		CORSOrigins:    getenv("CORS_ORIGINS", "*"),
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("JWT_TTL: " + err.Error())
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("REQUEST_TIMEOUT: " + err.Error())
		}
		cfg.RequestTimeout = d
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// SeedConfig is what the seed command needs. It does not require a JWT
// secret.
type SeedConfig struct {
	DatabaseURL   string
	AdminUsername string
	AdminPassword string
}

var ErrMissingAdminPassword = errors.New("ADMIN_PASSWORD is not set")

func LoadSeed() (SeedConfig, error) {
	_ = godotenv.Load()

	cfg := SeedConfig{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if cfg.DatabaseURL == "" {
		return SeedConfig{}, ErrMissingDatabaseURL
	}
	if cfg.AdminPassword == "" {
		return SeedConfig{}, ErrMissingAdminPassword
	}
	return cfg, nil
}
