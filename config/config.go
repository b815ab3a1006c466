package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Zcross091/torncity-bank-bot/core/log"
)

const (
	StorageBackendJSON     = "json"
	StorageBackendSQLite   = "sqlite"
	StorageBackendPostgres = "postgres"
)

type DiscordConfig struct {
	BotToken string
	// GuildID scopes slash command registration to one guild, empty registers globally
	GuildID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type TornConfig struct {
	APIBaseURL string
	Comment    string
}

type StorageConfig struct {
	Backend     string
	DataFile    string
	DatabaseURL string
}

type SlackConfig struct {
	AlertWebhookURL string
}

// IsConfigured returns true if Slack error alerts are enabled
func (c SlackConfig) IsConfigured() bool {
	return c.AlertWebhookURL != ""
}

type AppConfig struct {
	Port               string
	CORSAllowedOrigins string
	Environment        string
	LogLevel           string
	ServerLogsURL      string

	DiscordConfig DiscordConfig
	TornConfig    TornConfig
	StorageConfig StorageConfig
	SlackConfig   SlackConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	botToken, err := getEnvRequired("DISCORD_BOT_TOKEN")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		ServerLogsURL:      os.Getenv("SERVER_LOGS_URL"),

		DiscordConfig: DiscordConfig{
			BotToken: botToken,
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
		},

		TornConfig: TornConfig{
			APIBaseURL: getEnvWithDefault("TORN_API_URL", "https://api.torn.com"),
			Comment:    getEnvWithDefault("TORN_API_COMMENT", "bankbot"),
		},

		StorageConfig: StorageConfig{
			Backend:     getEnvWithDefault("STORAGE_BACKEND", StorageBackendJSON),
			DataFile:    getEnvWithDefault("DATA_FILE", "data.json"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},

		SlackConfig: SlackConfig{
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.SlackConfig.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Info("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return config, nil
}

// Validate checks values that may also have been overridden by command line flags
func (c *AppConfig) Validate() error {
	if !c.DiscordConfig.IsConfigured() {
		return fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}

	switch c.StorageConfig.Backend {
	case StorageBackendJSON:
		if c.StorageConfig.DataFile == "" {
			return fmt.Errorf("DATA_FILE cannot be empty for the json storage backend")
		}
	case StorageBackendSQLite, StorageBackendPostgres:
		if c.StorageConfig.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set (STORAGE_BACKEND=%s)", c.StorageConfig.Backend)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageConfig.Backend)
	}

	return nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
