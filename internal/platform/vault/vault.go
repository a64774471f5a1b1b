// Package vault wraps the HashiCorp Vault API client for bootstrap secret
// loading, adapted from go-core/config.SecretManager with the same
// KV v2 unwrapping convention every service's main.go relies on.
package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

// SecretManager reads secrets from a Vault server.
type SecretManager struct {
	client *api.Client
}

// NewSecretManager creates a Vault client pointed at address, authenticated
// with token.
func NewSecretManager(address, token string) (*SecretManager, error) {
	cfg := api.DefaultConfig()
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault client initialization failed: %w", err)
	}
	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetSecret reads the raw data map at path.
func (s *SecretManager) GetSecret(path string) (map[string]interface{}, error) {
	secret, err := s.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data found at %s", path)
	}
	return secret.Data, nil
}

// GetKV2 reads from a KV v2 backend and unwraps its nested "data" envelope.
func (s *SecretManager) GetKV2(path string) (map[string]interface{}, error) {
	raw, err := s.GetSecret(path)
	if err != nil {
		return nil, err
	}
	data, ok := raw["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected data format at %s", path)
	}
	return data, nil
}

// StringOr returns data[key] as a string, or fallback if absent or not a
// string — every secret internal/config takes from Vault (DATABASE_URL,
// SMTP host and credentials) reads through this helper.
func StringOr(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
