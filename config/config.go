package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Telegram transport.
	TelegramBotToken   string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramMode       string `mapstructure:"TELEGRAM_MODE"` // "polling" or "webhook"
	TelegramWebhookURL string `mapstructure:"TELEGRAM_WEBHOOK_URL"`

	// Booking store backend: "mongo" or "sheets".
	BookingStore string `mapstructure:"BOOKING_STORE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	SheetID      string `mapstructure:"SHEET_ID"`
	SheetName    string `mapstructure:"SHEET_NAME"`

	// Google service-account credentials (JSON blob) for Sheets/Calendar.
	GoogleCredsJSON string `mapstructure:"GOOGLE_CREDS_JSON"`

	// Officer calendar identifiers.
	CalendarIDDO  string `mapstructure:"CALENDAR_ID_DO"`
	CalendarIDADO string `mapstructure:"CALENDAR_ID_ADO"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB       int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Conversation session lifetime in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TELEGRAM_MODE", "polling")
	viper.SetDefault("BOOKING_STORE", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SHEET_NAME", "PDK_Appointment_Bookings")
	viper.SetDefault("CALENDAR_ID_DO", "do@keningau.gov.my")
	viper.SetDefault("CALENDAR_ID_ADO", "ado@keningau.gov.my")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
