package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret string
	JWTExpiry time.Duration

	CORSOrigins []string

	MediaRoot    string
	MediaBaseURL string

	RedisURL  string
	RateLimit string

	AMQPURL string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	TwilioPhoneNumber    string

	ReminderCron string
}

// TwilioEnabled reports whether outbound WhatsApp/SMS is configured.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

// Load reads configuration from a .env file if present and the environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may carry everything.
	_ = godotenv.Load()

	viper.SetDefault("DB_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("MEDIA_ROOT", "./media")
	viper.SetDefault("MEDIA_BASE_URL", "/media")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "200-M")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_WHATSAPP_NUMBER", "")
	viper.SetDefault("TWILIO_PHONE_NUMBER", "")
	viper.SetDefault("REMINDER_CRON", "0 9 * * *")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          viper.GetString("DB_URL"),
		Port:                 viper.GetString("PORT"),
		IsProduction:         viper.GetBool("IS_PRODUCTION"),
		JWTSecret:            viper.GetString("JWT_SECRET"),
		MediaRoot:            viper.GetString("MEDIA_ROOT"),
		MediaBaseURL:         strings.TrimRight(viper.GetString("MEDIA_BASE_URL"), "/"),
		RedisURL:             viper.GetString("REDIS_URL"),
		RateLimit:            viper.GetString("RATE_LIMIT"),
		AMQPURL:              viper.GetString("AMQP_URL"),
		TwilioAccountSID:     viper.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      viper.GetString("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: viper.GetString("TWILIO_WHATSAPP_NUMBER"),
		TwilioPhoneNumber:    viper.GetString("TWILIO_PHONE_NUMBER"),
		ReminderCron:         viper.GetString("REMINDER_CRON"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("DB_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, tokens cannot be issued")
	}

	hours := viper.GetInt("JWT_EXPIRY_HOURS")
	if hours <= 0 {
		slog.Warn("Invalid JWT_EXPIRY_HOURS, defaulting to 24", slog.Int("value", hours))
		hours = 24
	}
	cfg.JWTExpiry = time.Duration(hours) * time.Hour

	for _, origin := range strings.Split(viper.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
