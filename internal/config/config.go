package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	MenuAddress     string
	RedisAddress    string
	KafkaBrokers    []string
	AuditTopic      string
	JWTSecret       string
	TokenTTL        time.Duration
	StoreTimeout    time.Duration
	ShutdownTimeout time.Duration
	BroadcastBuffer int
	QRBaseURL       string
	AdminLogin      string
	AdminPassword   string
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultAuditTopic      = "fastfood.order-events"
	defaultTokenTTL        = 12 * time.Hour
	defaultStoreTimeout    = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultBroadcastBuffer = 256
	defaultAdminLogin      = "admin"
)

// Load parses configuration from .env file, environment, and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		MenuAddress:     getString(lookup, "MENU_ADDRESS", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDRESS", ""),
		AuditTopic:      getString(lookup, "AUDIT_TOPIC", defaultAuditTopic),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		StoreTimeout:    getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		BroadcastBuffer: getInt(lookup, "BROADCAST_BUFFER", defaultBroadcastBuffer),
		QRBaseURL:       getString(lookup, "QR_BASE_URL", ""),
		AdminLogin:      getString(lookup, "ADMIN_LOGIN", defaultAdminLogin),
		AdminPassword:   getString(lookup, "ADMIN_PASSWORD", ""),
	}
	cfg.KafkaBrokers = splitBrokers(getString(lookup, "KAFKA_BROKERS", ""))

	fs := flag.NewFlagSet("fastfood", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		storeTimeoutStr    = cfg.StoreTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.MenuAddress, "m", cfg.MenuAddress, "Menu catalog service base URL")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for idempotency tokens")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated kafka brokers for the audit stream")
	fs.StringVar(&cfg.AuditTopic, "audit-topic", cfg.AuditTopic, "Kafka topic for audit events")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Per-call storage timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.BroadcastBuffer, "broadcast-buffer", cfg.BroadcastBuffer, "Buffered events awaiting broadcast dispatch")
	fs.StringVar(&cfg.QRBaseURL, "qr-base-url", cfg.QRBaseURL, "Base URL encoded into payment QR codes")
	fs.StringVar(&cfg.AdminLogin, "admin-login", cfg.AdminLogin, "Login for the bootstrap administrator account")
	fs.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Password for the bootstrap administrator account")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.KafkaBrokers = splitBrokers(brokersStr)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BroadcastBuffer <= 0 {
		cfg.BroadcastBuffer = defaultBroadcastBuffer
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.MenuAddress == "" {
		return nil, fmt.Errorf("menu service address must be provided")
	}

	return cfg, nil
}

func splitBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
