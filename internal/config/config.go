package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	// BaseURL is the externally visible origin used when building
	// activation and password-reset links placed in emails.
	BaseURL      string
	MailAPIURL   string
	MailAPIToken string
	NonceSecret  string
	ServiceName  string
	LogLevel     string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8080"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		MailAPIURL:     getEnv("MAIL_API_URL", ""),
		MailAPIToken:   getEnv("MAIL_API_TOKEN", ""),
		NonceSecret:    getEnv("NONCE_SECRET", ""),
		ServiceName:    getEnv("SERVICE_NAME", "accounts-api"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate checks that the fields required by the given command are set.
func (c *Config) Validate(command string) error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if command == "accounts-api" && c.NonceSecret == "" {
		return fmt.Errorf("NONCE_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
