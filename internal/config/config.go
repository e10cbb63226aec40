package config

import (
	"flag"
	"os"

	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/currency"
)

// Config holds the application configuration.
type Config struct {
	RunAddress    string
	DatabaseURI   string
	AdminPassword string
	BaseURL       string
	UploadDir     string

	PaymentGatewayAddress string
	PaymentSecretKey      string

	// Rate overrides, as decimal strings. Empty means the default table.
	RateXAF string
	RateUSD string

	SecureCookies bool
}

// Load reads configuration from command-line flags and environment
// variables. Environment variables take precedence over flags.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port to listen on")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.UploadDir, "u", "uploads", "directory for uploaded product images")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}
	if envUploadDir := os.Getenv("UPLOAD_DIR"); envUploadDir != "" {
		cfg.UploadDir = envUploadDir
	}

	// Required: there is no fallback password on purpose.
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}

	cfg.PaymentGatewayAddress = os.Getenv("PAYMENT_GATEWAY_ADDRESS")
	if cfg.PaymentGatewayAddress == "" {
		cfg.PaymentGatewayAddress = "https://api.stripe.com"
	}
	cfg.PaymentSecretKey = os.Getenv("STRIPE_SECRET_KEY")

	cfg.RateXAF = os.Getenv("RATE_XAF")
	cfg.RateUSD = os.Getenv("RATE_USD")

	cfg.SecureCookies = os.Getenv("SECURE_COOKIES") == "true"

	return cfg
}

// Rates builds the currency rate table: the defaults with any configured
// overrides applied. Unparseable overrides are ignored.
func (c *Config) Rates() map[currency.Unit]decimal.Decimal {
	rates := currency.DefaultRates()
	if c.RateXAF != "" {
		if r, err := decimal.NewFromString(c.RateXAF); err == nil {
			rates[currency.XAF] = r
		}
	}
	if c.RateUSD != "" {
		if r, err := decimal.NewFromString(c.RateUSD); err == nil {
			rates[currency.USD] = r
		}
	}
	return rates
}
