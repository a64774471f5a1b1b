// Package config loads process settings the way every teacher service's
// main.go does: environment variables for top-level settings, with an
// optional HashiCorp Vault fetch for DATABASE_URL and SMTP credentials
// gated behind VAULT_ADDR, mirroring the `if cfg.VaultAddr != ""` branch
// repeated across apps/*/cmd/*/main.go.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arc-self/rustrak/internal/platform/vault"
)

// RateLimit is the {per_minute, per_hour} pair for one quota scope.
type RateLimit struct {
	PerMinute int64
	PerHour   int64
}

// Config is the fully resolved process configuration.
type Config struct {
	Host string
	Port string

	DatabaseURL  string
	IngestDir    string
	NatsURL      string
	DashboardURL string

	Installation RateLimit
	Project      RateLimit

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	OTelEndpoint string
	Env          string
}

// Load resolves configuration from the environment, optionally overlaying
// DATABASE_URL and SMTP credentials from Vault when VAULT_ADDR is set.
// It fails fast (returns an error the caller is expected to treat as fatal)
// on any setting that cannot be parsed, matching the teacher's
// logger.Fatal-on-bad-config posture.
func Load() (*Config, error) {
	cfg := &Config{
		Host:         envOr("HOST", "0.0.0.0"),
		Port:         envOr("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		IngestDir:    envOr("INGEST_DIR", "/tmp/rustrak/ingest"),
		NatsURL:      envOr("NATS_URL", "nats://localhost:4222"),
		DashboardURL: envOr("DASHBOARD_URL", "http://localhost:3000"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     envOr("SMTP_FROM", "alerts@rustrak.local"),
		OTelEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Env:          envOr("RUSTRAK_ENV", "production"),
	}

	var err error
	if cfg.SMTPPort, err = envIntOr("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.Installation.PerMinute, err = envInt64Or("RATE_LIMIT_INSTALLATION_PER_MINUTE", 1000); err != nil {
		return nil, err
	}
	if cfg.Installation.PerHour, err = envInt64Or("RATE_LIMIT_INSTALLATION_PER_HOUR", 50000); err != nil {
		return nil, err
	}
	if cfg.Project.PerMinute, err = envInt64Or("RATE_LIMIT_PROJECT_PER_MINUTE", 200); err != nil {
		return nil, err
	}
	if cfg.Project.PerHour, err = envInt64Or("RATE_LIMIT_PROJECT_PER_HOUR", 10000); err != nil {
		return nil, err
	}

	if v := os.Getenv("SSL_PROXY"); v != "" {
		sslProxy, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SSL_PROXY: %w", err)
		}
		key := os.Getenv("SESSION_SECRET_KEY")
		validKey := len(key) == 64
		for _, r := range key {
			validKey = validKey && ((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F'))
		}
		if sslProxy && !validKey {
			return nil, fmt.Errorf("SESSION_SECRET_KEY must be 64 hex characters when SSL_PROXY is true")
		}
	}

	vaultAddr := os.Getenv("VAULT_ADDR")
	if vaultAddr == "" {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when VAULT_ADDR is unset")
		}
		return cfg, nil
	}

	secrets, err := loadVaultSecrets(vaultAddr)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = vault.StringOr(secrets, "DATABASE_URL", cfg.DatabaseURL)
	cfg.SMTPHost = vault.StringOr(secrets, "SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPUsername = vault.StringOr(secrets, "SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = vault.StringOr(secrets, "SMTP_PASSWORD", cfg.SMTPPassword)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL resolved empty from both environment and Vault")
	}
	return cfg, nil
}

func loadVaultSecrets(addr string) (map[string]interface{}, error) {
	token := envOr("VAULT_TOKEN", "root")
	path := envOr("VAULT_SECRET_PATH", "secret/data/arc/rustrak")

	manager, err := vault.NewSecretManager(addr, token)
	if err != nil {
		return nil, fmt.Errorf("vault connection failed: %w", err)
	}
	secrets, err := manager.GetKV2(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets from vault: %w", err)
	}
	return secrets, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envInt64Or(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
