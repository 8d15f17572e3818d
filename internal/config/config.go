package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	FunctionPort    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CatalogDriver     string
	CatalogDSN        string
	CatalogMigrations string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	RazorpayTimeout   time.Duration
	MerchantName      string

	PaymentsDSN        string
	PaymentsMigrations string

	OrderWebhookURL string
	KafkaBrokers    []string
	OrderTopic      string
	RecordTimeout   time.Duration

	CheckoutRateLimit float64
	CheckoutRateBurst int
}

// Load reads the environment. A .env file in the working directory is applied
// first when present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		FunctionPort:      getEnv("FUNCTION_PORT", "8081"),
		CatalogDriver:     getEnv("CATALOG_DRIVER", "sqlite"),
		CatalogDSN:        getEnv("CATALOG_DSN", "./storefront.db"),
		CatalogMigrations: getEnv("CATALOG_MIGRATIONS_PATH", "./internal/catalog/migrations"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com"),
		MerchantName:      getEnv("MERCHANT_NAME", "SubBox"),

		PaymentsDSN:        getEnv("PAYMENTS_DSN", ""),
		PaymentsMigrations: getEnv("PAYMENTS_MIGRATIONS_PATH", "./internal/payment/migrations"),

		OrderWebhookURL: getEnv("ORDER_WEBHOOK_URL", ""),
		KafkaBrokers:    getList("KAFKA_BROKERS"),
		OrderTopic:      getEnv("ORDER_TOPIC", "orders-recorded"),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RazorpayTimeout, err = getDuration("RAZORPAY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RecordTimeout, err = getDuration("ORDER_RECORD_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CheckoutRateLimit, err = getFloat("CHECKOUT_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.CheckoutRateBurst, err = getInt("CHECKOUT_RATE_BURST", 10); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RazorpayConfigured reports whether real provider credentials are present.
func (c *Config) RazorpayConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

// PaymentsTableConfigured reports whether the payments table should be stamped.
// It is independent of the provider credentials.
func (c *Config) PaymentsTableConfigured() bool {
	return c.PaymentsDSN != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
