package config

import (
	"os"
	"strconv"
	"time"
)

// DBConfig holds the Postgres connection settings
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// NotificationConfig holds the operational report recipients. TO and CC
// slots that are unset in the environment are dropped, not sent as empty
// addresses.
type NotificationConfig struct {
	To   []string
	CC   []string
	From string
}

type Config struct {
	DB             DBConfig
	SendGridAPIKey string
	Notification   NotificationConfig
	LogLevel       string
	LogDir         string
	HTTPPort       string
	ChunkSize      int
	ChunkDelay     time.Duration
	DispatchCron   string
	AMQPURL        string
}

// Load reads configuration from environment
func Load() Config {
	chunkSize, _ := strconv.Atoi(os.Getenv("MAIL_CHUNK_SIZE"))
	if chunkSize <= 0 {
		chunkSize = 150
	}
	chunkDelay, err := time.ParseDuration(os.Getenv("MAIL_CHUNK_DELAY"))
	if err != nil || chunkDelay <= 0 {
		chunkDelay = 5 * time.Second
	}

	return Config{
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		Notification: NotificationConfig{
			To: nonEmpty(
				os.Getenv("NOTIFICATION_TO_EMAIL1"),
				os.Getenv("NOTIFICATION_TO_EMAIL2"),
				os.Getenv("NOTIFICATION_TO_EMAIL3"),
			),
			CC: nonEmpty(
				os.Getenv("NOTIFICATION_CC_EMAIL1"),
				os.Getenv("NOTIFICATION_CC_EMAIL2"),
			),
			From: os.Getenv("NOTIFICATION_FROM_EMAIL"),
		},
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogDir:       getenv("LOG_DIR", "logs"),
		HTTPPort:     getenv("HTTP_PORT", "3000"),
		ChunkSize:    chunkSize,
		ChunkDelay:   chunkDelay,
		DispatchCron: os.Getenv("DISPATCH_CRON"),
		AMQPURL:      os.Getenv("AMQP_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func nonEmpty(values ...string) []string {
	out := []string{}
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
