package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	envVar        = "ENV"
	baseURLVar    = "BASE_URL"
	dbPathVar     = "DATABASE_PATH"
	sessionSecret = "SESSION_SECRET"
	adminUserVar  = "ADMIN_USERNAME"
	adminPassVar  = "ADMIN_PASSWORD"
	googleIDVar   = "GOOGLE_CLIENT_ID"
	googleSecVar  = "GOOGLE_CLIENT_SECRET"
)

// Config holds every setting the process consumes. It is loaded and
// validated once at boot; components receive only the fields they need.
type Config struct {
	Env     string `validate:"required,oneof=DEV PROD"`
	Port    string `validate:"required"`
	AppName string `validate:"required"`

	BaseURL       string `validate:"required,url"`
	SessionSecret string `validate:"required,min=16"`

	AdminUsername string `validate:"required"`
	// Bcrypt hash of the configured admin password. The plaintext value is
	// read from the environment and discarded after hashing.
	AdminPasswordHash string `validate:"required"`

	GoogleClientID     string `validate:"required"`
	GoogleClientSecret string `validate:"required"`

	DatabasePath string `validate:"required"`
}

// Load reads the environment (and an optional .env file) into a Config
// and validates it. Any missing credential fails here, at boot, rather
// than at first request.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional, real env vars win

	password := os.Getenv(adminPassVar)
	if password == "" {
		return nil, fmt.Errorf("config: %s is not set", adminPassVar)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("config: failed to hash admin password: %w", err)
	}

	c := &Config{
		Env:                GetEnv(envVar, "DEV"),
		Port:               normalisePort(GetEnv(portEnvVar, "8080")),
		AppName:            GetEnv(appNameVar, "EventDesk"),
		BaseURL:            strings.TrimRight(GetEnv(baseURLVar, "http://localhost:8080"), "/"),
		SessionSecret:      os.Getenv(sessionSecret),
		AdminUsername:      os.Getenv(adminUserVar),
		AdminPasswordHash:  string(passwordHash),
		GoogleClientID:     os.Getenv(googleIDVar),
		GoogleClientSecret: os.Getenv(googleSecVar),
		DatabasePath:       GetEnv(dbPathVar, "./data/eventdesk.db"),
	}

	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// IsProduction reports whether the process runs with production settings.
// The Secure cookie flag keys off this.
func (c *Config) IsProduction() bool {
	return c.Env == "PROD"
}

func normalisePort(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
