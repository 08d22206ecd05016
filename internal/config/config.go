// Package config loads application configuration from environment
// variables, with .env support for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	TelegramToken   string // Telegram bot API token
	WebhookURL      string // public URL Telegram delivers updates to
	SecretToken     string // optional webhook secret token (header check)
	GeminiAPIKey    string // Gemini API key for intent classification
	GeminiModel     string // Gemini model name
	SpreadsheetID   string // Google Sheets spreadsheet id (record store)
	CredentialsFile string // path to the Google service account JSON
	StateTTLMin     int    // dialogue/session state TTL in minutes
}

// Load reads a .env file when present, then resolves the configuration
// from the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		TelegramToken:   must("TELEGRAM_BOT_TOKEN"),
		WebhookURL:      must("TELEGRAM_WEBHOOK_URL"),
		SecretToken:     os.Getenv("TELEGRAM_SECRET_TOKEN"), // empty disables the header check
		GeminiAPIKey:    must("GEMINI_API_KEY"),
		GeminiModel:     withDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		SpreadsheetID:   must("GOOGLE_SHEETS_ID"),
		CredentialsFile: must("GOOGLE_CREDENTIALS_FILE"),
		StateTTLMin:     intWithDefault("STATE_TTL_MIN", 60),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// withDefault returns the variable's value or the fallback when unset.
func withDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intWithDefault parses an optional integer variable.  An invalid value
// is fatal; an absent one yields the fallback.
func intWithDefault(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
