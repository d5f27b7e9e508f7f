package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "./data/mealplan.db"
)

// Config holds the configuration for the application.
type Config struct {
	// LLM provider credentials. All optional; whichever is present first in
	// the selection order wins. None present means generation is unavailable.
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string

	// Server and storage
	Port   string
	DBPath string

	// Telegram Config (optional; the bot only starts when the token is set)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
// Missing provider credentials are not an error here: their absence is a
// normal state that the provider selection reports on its own.
func NewFromEnv() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	var telegramAllowUserID int64
	if s := os.Getenv("TELEGRAM_ALLOW_USER_ID"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_ID %q: %w", s, err)
		}
		telegramAllowUserID = id
	}

	return &Config{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		Port:                port,
		DBPath:              dbPath,
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}

// HasAnyProviderKey reports whether at least one LLM credential is set.
func (c *Config) HasAnyProviderKey() bool {
	return c.OpenAIAPIKey != "" || c.AnthropicAPIKey != "" || c.GeminiAPIKey != ""
}
