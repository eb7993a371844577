package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Stripe      StripeConfig
	Frontend    FrontendConfig
	LogLevel    string
}

// StripeConfig is used for every payment-provider call
type StripeConfig struct {
	SecretKey  string        // STRIPE_SECRET: secret API key, never logged
	Currency   string        // single-currency service; all amounts use this
	Timeout    time.Duration // per-call deadline for provider requests
	MaxRetries int           // bounded retry on transient provider failures
}

// FrontendConfig drives CORS and return-URL construction
type FrontendConfig struct {
	Origin string // e.g. http://localhost:5173
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "4242")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("CURRENCY", "cad")
	viper.SetDefault("STRIPE_TIMEOUT_SECONDS", "10")
	viper.SetDefault("STRIPE_MAX_RETRIES", "2")
	viper.SetDefault("FRONTEND_ORIGIN", "http://localhost:5173")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSeconds, err := strconv.Atoi(getEnvOrViper("STRIPE_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSeconds <= 0 {
		return nil, fmt.Errorf("STRIPE_TIMEOUT_SECONDS must be a positive integer")
	}
	maxRetries, err := strconv.Atoi(getEnvOrViper("STRIPE_MAX_RETRIES", "2"))
	if err != nil || maxRetries < 0 {
		return nil, fmt.Errorf("STRIPE_MAX_RETRIES must be a non-negative integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "4242"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Stripe: StripeConfig{
			SecretKey:  strings.TrimSpace(getEnvOrViper("STRIPE_SECRET", "")),
			Currency:   strings.ToLower(strings.TrimSpace(getEnvOrViper("CURRENCY", "cad"))),
			Timeout:    time.Duration(timeoutSeconds) * time.Second,
			MaxRetries: maxRetries,
		},
		Frontend: FrontendConfig{
			Origin: strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("FRONTEND_ORIGIN", "http://localhost:5173")), "/"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET is required")
	}
	if cfg.Stripe.Currency == "" {
		return nil, fmt.Errorf("CURRENCY must not be blank")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
