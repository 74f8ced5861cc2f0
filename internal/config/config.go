// Package config loads process configuration from the environment (and an
// optional .env file in local development), following the conventions the
// rest of the stack expects: plain os.Getenv reads with typed accessors and
// sane defaults, no reflection-based binding.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting the API server and the
// email worker need. Both processes load the same struct; the worker
// simply ignores the HTTP-only fields.
type Config struct {
	Stage string

	DatabaseURL string
	Port        string
	FrontendURL string

	SMTPHost string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	ResendAPIKey  string
	ResendFromAddr string
	ResendFromName string

	StripeSecretKey     string
	StripeWebhookSecret string

	CryptoRailBaseURL string
	CryptoRailSecret  string

	TelegramBotToken string
	SMSAPIKey        string
	SMSAPIBaseURL    string

	InvoiceSellerName       string
	InvoiceSellerAddress    string
	InvoiceSellerVatID      string
	DefaultEscalationAccount string

	AdminBootstrapUsername string

	NonceCacheCapacity int
	NonceCacheTTL      time.Duration

	EmailWorkerBatchSize     int
	EmailWorkerPollInterval  time.Duration
}

// Load reads configuration from the process environment. It attempts to
// load a ".env" file first (ignored if absent — production sets real env
// vars directly), mirroring the teacher's local-dev bootstrap.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is expected in production; nothing to log loudly about.
		_ = err
	}

	return &Config{
		Stage:       getenv("STAGE", "local"),
		DatabaseURL: getenv("DATABASE_URL", "postgres://localhost:5432/decent_cloud?sslmode=disable"),
		Port:        getenv("PORT", "8000"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ResendFromAddr: getenv("RESEND_FROM_ADDR", "notifications@decent-cloud.org"),
		ResendFromName: getenv("RESEND_FROM_NAME", "Decent Cloud"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		CryptoRailBaseURL: getenv("CRYPTO_RAIL_BASE_URL", "https://icpay.example"),
		CryptoRailSecret:  os.Getenv("CRYPTO_RAIL_SECRET_KEY"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		SMSAPIKey:        os.Getenv("SMS_API_KEY"),
		SMSAPIBaseURL:    getenv("SMS_API_BASE_URL", "https://sms.example"),

		InvoiceSellerName:        getenv("INVOICE_SELLER_NAME", "Decent Cloud"),
		InvoiceSellerAddress:     os.Getenv("INVOICE_SELLER_ADDRESS"),
		InvoiceSellerVatID:       os.Getenv("INVOICE_SELLER_VAT_ID"),
		DefaultEscalationAccount: os.Getenv("DEFAULT_ESCALATION_ACCOUNT"),

		AdminBootstrapUsername: os.Getenv("ADMIN_BOOTSTRAP_USERNAME"),

		NonceCacheCapacity: getenvInt("NONCE_CACHE_CAPACITY", 100_000),
		NonceCacheTTL:      300 * time.Second,

		EmailWorkerBatchSize:    getenvInt("EMAIL_WORKER_BATCH_SIZE", 50),
		EmailWorkerPollInterval: getenvDuration("EMAIL_WORKER_POLL_INTERVAL", 10*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
