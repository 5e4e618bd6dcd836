package config

import (
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/fastfood",
		"MENU_ADDRESS": "http://localhost:9090",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("expected default run address, got %q", cfg.RunAddress)
	}
	if cfg.StoreTimeout != defaultStoreTimeout {
		t.Fatalf("expected default store timeout, got %s", cfg.StoreTimeout)
	}
	if cfg.BroadcastBuffer != defaultBroadcastBuffer {
		t.Fatalf("expected default broadcast buffer, got %d", cfg.BroadcastBuffer)
	}
	if cfg.AuditTopic != defaultAuditTopic {
		t.Fatalf("expected default audit topic, got %q", cfg.AuditTopic)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no brokers by default, got %v", cfg.KafkaBrokers)
	}
	if cfg.AdminLogin != defaultAdminLogin || cfg.AdminPassword != "" {
		t.Fatalf("unexpected admin bootstrap defaults %q/%q", cfg.AdminLogin, cfg.AdminPassword)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"MENU_ADDRESS": "http://menu"})); err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadRequiresMenuAddress(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"DATABASE_URI": "postgres://db"})); err == nil {
		t.Fatal("expected error when menu address is missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://db",
		"MENU_ADDRESS":     "http://menu",
		"RUN_ADDRESS":      ":9000",
		"REDIS_ADDRESS":    "localhost:6379",
		"KAFKA_BROKERS":    "k1:9092, k2:9092",
		"STORE_TIMEOUT":    "2s",
		"SHUTDOWN_TIMEOUT": "3s",
		"BROADCAST_BUFFER": "16",
		"TOKEN_TTL":        "1h",
		"ADMIN_LOGIN":      "root",
		"ADMIN_PASSWORD":   "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":9000" {
		t.Fatalf("expected :9000, got %q", cfg.RunAddress)
	}
	if cfg.StoreTimeout != 2*time.Second {
		t.Fatalf("expected 2s store timeout, got %s", cfg.StoreTimeout)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.AdminLogin != "root" || cfg.AdminPassword != "s3cret" {
		t.Fatalf("unexpected admin bootstrap %q/%q", cfg.AdminLogin, cfg.AdminPassword)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	args := []string{"-a", ":7070", "-store-timeout", "500ms", "-kafka-brokers", "solo:9092"}
	cfg, err := load(args, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://db",
		"MENU_ADDRESS": "http://menu",
		"RUN_ADDRESS":  ":9000",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Fatalf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.StoreTimeout != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %s", cfg.StoreTimeout)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "solo:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	if _, err := load([]string{"-store-timeout", "soon"}, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://db",
		"MENU_ADDRESS": "http://menu",
	})); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}
