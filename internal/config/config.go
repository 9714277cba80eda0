package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the backend. Every value can
// be set through the environment, optionally via a .env file.
type Config struct {
	Port         string
	DatabaseFile string
	RedisAddr    string

	// Plaid is optional. Bank linking stays disabled until both the
	// client ID and the secret are set.
	PlaidClientID      string
	PlaidSecret        string
	PlaidEnv           string
	PlaidEncryptionKey string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if it exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getenv("PORT", "8080"),
		DatabaseFile:       getenv("DATABASE_FILE", "data/account_manager.db"),
		RedisAddr:          getenv("REDIS_ADDR", ""),
		PlaidClientID:      getenv("PLAID_CLIENT_ID", ""),
		PlaidSecret:        getenv("PLAID_SECRET", ""),
		PlaidEnv:           getenv("PLAID_ENV", "sandbox"),
		PlaidEncryptionKey: getenv("PLAID_ENCRYPTION_KEY", ""),
	}
}

// PlaidEnabled reports whether the Plaid integration is configured.
func (c *Config) PlaidEnabled() bool {
	return c.PlaidClientID != "" && c.PlaidSecret != ""
}
