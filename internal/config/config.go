package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is built once in main and handed to constructors. Components
// never read environment variables themselves.
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	RestaurantServiceURL string
	ClientURL            string

	StripeSecretKey     string
	StripeWebhookSecret string

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	// StrictStatusTransitions makes operator status patches enforce the
	// strict-successor rule instead of the permissive overwrite.
	StrictStatusTransitions bool
}

// Load reads .env when present, then builds and validates the config
// from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using system environment")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		MongoURI:                os.Getenv("MONGO_URI"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "mealcart"),
		RedisAddr:               os.Getenv("REDIS_HOST"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RestaurantServiceURL:    os.Getenv("RESTAURANT_SVC_ADDRESS"),
		ClientURL:               os.Getenv("CLIENT_SVC_ADDRESS"),
		StripeSecretKey:         os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		SMTPHost:                os.Getenv("SMTP_HOST"),
		SMTPPort:                getEnvInt("SMTP_PORT", 587),
		SMTPUsername:            os.Getenv("SMTP_USERNAME"),
		SMTPPassword:            os.Getenv("SMTP_PASSWORD"),
		MailFrom:                getEnv("MAIL_FROM", "noreply@mealcart.io"),
		StrictStatusTransitions: os.Getenv("STRICT_STATUS_TRANSITIONS") == "true",
	}

	required := map[string]string{
		"MONGO_URI":              cfg.MongoURI,
		"REDIS_HOST":             cfg.RedisAddr,
		"RESTAURANT_SVC_ADDRESS": cfg.RestaurantServiceURL,
		"CLIENT_SVC_ADDRESS":     cfg.ClientURL,
		"STRIPE_SECRET_KEY":      cfg.StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET":  cfg.StripeWebhookSecret,
		"JWT_SECRET":             cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("config: %s is not set", name)
		}
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP is configured. Confirmation emails
// are skipped otherwise.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
