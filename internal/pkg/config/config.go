// Package config reads the process configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServiceName string
	Port        string
	LogLevel    string
	DBPath      string
	SeedFile    string

	RedisAddr       string
	ProductCacheTTL time.Duration

	OTLPEndpoint string

	Card        CardConfig
	MobileMoney MobileMoneyConfig
	SMTP        SMTPConfig

	PaymentTimeout time.Duration
}

// CardConfig holds the credentials of the card rail. The secret key never
// leaves the adapter; the public key is served to clients for tokenization.
type CardConfig struct {
	APIURL    string
	SecretKey string
	PublicKey string
	Currency  string
}

type MobileMoneyConfig struct {
	APIURL       string
	TokenURL     string
	ClientID     string
	ClientSecret string
	PublicKey    string
	CallbackURL  string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Load builds a Config from the environment, applying defaults for anything
// unset.
func Load() (Config, error) {
	cacheTTL, err := getDuration("PRODUCT_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	payTimeout, err := getDuration("PAYMENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:     getEnv("OTEL_SERVICE_NAME", "store-api"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBPath:          getEnv("DB_PATH", "./data/store.db"),
		SeedFile:        os.Getenv("SEED_FILE"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ProductCacheTTL: cacheTTL,
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Card: CardConfig{
			APIURL:    getEnv("CARD_API_URL", "https://api.stripe.com"),
			SecretKey: os.Getenv("CARD_SECRET_KEY"),
			PublicKey: os.Getenv("CARD_PUBLIC_KEY"),
			Currency:  getEnv("CARD_CURRENCY", "usd"),
		},
		MobileMoney: MobileMoneyConfig{
			APIURL:       getEnv("MOBILE_API_URL", "https://sandbox.safaricom.co.ke"),
			TokenURL:     getEnv("MOBILE_TOKEN_URL", "https://sandbox.safaricom.co.ke/oauth/v1/token"),
			ClientID:     os.Getenv("MOBILE_CLIENT_ID"),
			ClientSecret: os.Getenv("MOBILE_CLIENT_SECRET"),
			PublicKey:    os.Getenv("MOBILE_PUBLIC_KEY"),
			CallbackURL:  os.Getenv("MOBILE_CALLBACK_URL"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "shop@localhost"),
		},
		PaymentTimeout: payTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
