package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the service configuration, loaded from .env and the
// environment.
type Config struct {
	Env      string `validate:"oneof=dev prod"`
	LogLevel string `validate:"oneof=debug info warn error"`
	Port     uint16 `validate:"required"`

	// AllowedOrigins lists the frontend origins permitted to call this
	// service. "*" allows any origin.
	AllowedOrigins []string `validate:"required,min=1"`

	Commerce CommerceConfig
	Locale   LocaleConfig
}

// CommerceConfig points at the commerce platform's storefront API.
type CommerceConfig struct {
	// BaseURL is the storefront API root, e.g. "https://shop.example.com/api/storefront".
	BaseURL string `validate:"required,url"`

	// APIToken is the public storefront access token for this shop.
	APIToken string `validate:"required"`

	// Timeout bounds each storefront API call.
	Timeout time.Duration
}

// LocaleConfig configures the validator set for the storefront's region.
// The rules themselves live in the form package; this only selects them.
type LocaleConfig struct {
	// Country is the default country seeded into new address forms.
	Country string `validate:"required"`

	// CallingCode is the international dialing prefix without the plus.
	CallingCode string `validate:"required,numeric"`

	// PostalDigits is the exact digit count of a valid postal code.
	PostalDigits int `validate:"min=3,max=10"`
}

// NewConfig loads configuration from .env (walking up to two parent
// directories) and the environment, then validates it.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:            getEnv("ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Port:           getEnvInt("PORT", 3000),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		Commerce: CommerceConfig{
			BaseURL:  getEnv("COMMERCE_BASE_URL", "http://localhost:4000/api/storefront"),
			APIToken: getEnv("COMMERCE_API_TOKEN", "dev-storefront-token"),
			Timeout:  time.Duration(getEnvInt("COMMERCE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Locale: LocaleConfig{
			Country:      getEnv("LOCALE_COUNTRY", "India"),
			CallingCode:  getEnv("LOCALE_CALLING_CODE", "91"),
			PostalDigits: int(getEnvInt("LOCALE_POSTAL_DIGITS", 6)),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// The dev defaults above must not reach production.
	if cfg.Env == "prod" && cfg.Commerce.APIToken == "dev-storefront-token" {
		return nil, fmt.Errorf("COMMERCE_API_TOKEN must be set in production environment")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
