package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Env                 string
	StripeSecretKey     string
	StripeWebhookSecret string
	PriceID             string
	BaseURL             string
	SMTPHost            string
	SMTPPort            string
	SMTPUser            string
	SMTPPass            string
	NotifyEmail         string
}

// LoadConfig reads configuration from the environment (and an optional .env
// file). All secrets are required; startup fails if any are missing.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8087"),
		Env:                 getEnv("ENV", "development"),
		StripeSecretKey:     os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PriceID:             os.Getenv("PRICE_CURATED"),
		BaseURL:             strings.TrimSuffix(os.Getenv("BASE_URL"), "/"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUser:            os.Getenv("SMTP_USER"),
		SMTPPass:            os.Getenv("SMTP_PASS"),
		NotifyEmail:         os.Getenv("NOTIFY_EMAIL"),
	}

	// Internal notifications fall back to the sending mailbox.
	if cfg.NotifyEmail == "" {
		cfg.NotifyEmail = cfg.SMTPUser
	}

	var missing []string
	for name, val := range map[string]string{
		"STRIPE_API_KEY":        cfg.StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET": cfg.StripeWebhookSecret,
		"PRICE_CURATED":         cfg.PriceID,
		"BASE_URL":              cfg.BaseURL,
		"SMTP_HOST":             cfg.SMTPHost,
		"SMTP_USER":             cfg.SMTPUser,
		"SMTP_PASS":             cfg.SMTPPass,
	} {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
