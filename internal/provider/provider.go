package provider

import (
	"context"

	"github.com/ylchen07/smart-secrets/pkg/models"
)

// Provider represents a secret store backend
type Provider interface {
	// Name returns the provider name (e.g., "aws", "azure", "hashicorp")
	Name() string

	// ListSecrets returns the secrets of the store in the order the store reports them
	ListSecrets(ctx context.Context) ([]models.SecretSummary, error)

	// GetSecretValue retrieves the raw value of one secret by its ID
	GetSecretValue(ctx context.Context, id string) (string, error)
}

// Config holds provider-specific configuration
type Config struct {
	Name     string                 // Provider name
	Instance string                 // Configured instance name, empty for env-only setups
	Settings map[string]interface{} // Provider-specific settings
}

// String returns a setting as a string, or "" when missing or of another type
func (c *Config) String(key string) string {
	if c == nil || c.Settings == nil {
		return ""
	}
	if v, ok := c.Settings[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns a setting as a bool, or false when missing or of another type
func (c *Config) Bool(key string) bool {
	if c == nil || c.Settings == nil {
		return false
	}
	if v, ok := c.Settings[key].(bool); ok {
		return v
	}
	return false
}
