package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every secret and connection setting the application needs.
// It is built once at startup and handed to components at construction; no
// business code reads the environment directly.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret []byte
	TokenTTL  time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	PusherAppID   string
	PusherKey     string
	PusherSecret  string
	PusherCluster string

	RedisURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseDSN: getDSN(),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  time.Duration(getenvInt("JWT_EXPIRATION_MINUTES", 1440)) * time.Minute,

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            getenv("PAYMENT_CURRENCY", "usd"),

		PusherAppID:   os.Getenv("PUSHER_APP_ID"),
		PusherKey:     os.Getenv("PUSHER_KEY"),
		PusherSecret:  os.Getenv("PUSHER_SECRET"),
		PusherCluster: os.Getenv("PUSHER_CLUSTER"),

		RedisURL: os.Getenv("REDIS_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getenv("MAIL_FROM", "no-reply@booktrack.app"),
	}
}

func getDSN() string {
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		return dsn
	}
	host := getenv("DATABASE_HOST", "localhost")
	port := getenv("DATABASE_PORT", "5432")
	sslmode := getenv("DATABASE_SSLMODE", "disable")
	timezone := getenv("DATABASE_TIMEZONE", "UTC")
	user := getenv("DATABASE_USER", "postgres")
	password := os.Getenv("DATABASE_PASSWORD")
	name := getenv("DATABASE_NAME", "booktrack")
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, name, port, sslmode, timezone)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
