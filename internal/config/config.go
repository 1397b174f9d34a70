package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration of the service, read from the
// environment with sensible defaults for local development.
type Config struct {
	AppPort     string
	DatabaseURL string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	UploadsDir string
	ScratchDir string

	TelegramBotToken string
	TelegramChatID   string
	TelegramTimeout  time.Duration

	FontPath string
	LogoPath string

	RabbitMQURL string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=salesdesk port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("REFRESH_TOKEN_TTL_HOURS", 24)
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("SCRATCH_DIR", "scratch")
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_CHAT_ID", "")
	viper.SetDefault("TELEGRAM_TIMEOUT_SECONDS", 30)
	viper.SetDefault("FONT_PATH", "")
	viper.SetDefault("LOGO_PATH", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	return &Config{
		AppPort:          viper.GetString("APP_PORT"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		AccessTTL:        time.Duration(viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
		RefreshTTL:       time.Duration(viper.GetInt("REFRESH_TOKEN_TTL_HOURS")) * time.Hour,
		UploadsDir:       viper.GetString("UPLOADS_DIR"),
		ScratchDir:       viper.GetString("SCRATCH_DIR"),
		TelegramBotToken: viper.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   viper.GetString("TELEGRAM_CHAT_ID"),
		TelegramTimeout:  time.Duration(viper.GetInt("TELEGRAM_TIMEOUT_SECONDS")) * time.Second,
		FontPath:         viper.GetString("FONT_PATH"),
		LogoPath:         viper.GetString("LOGO_PATH"),
		RabbitMQURL:      viper.GetString("RABBITMQ_URL"),
	}
}
