package hashicorp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// errSecretNotFound is returned by ReadSecret when the path holds no secret
var errSecretNotFound = errors.New("secret not found")

// Client wraps the HashiCorp Vault API client
type Client struct {
	client *vault.Client
}

// NewClient creates a new HashiCorp Vault client
// Empty arguments fall back to the standard Vault environment variables:
// - VAULT_ADDR: Vault server address (required)
// - VAULT_TOKEN: Authentication token (required)
// - VAULT_NAMESPACE: Vault namespace (optional, required for Vault Enterprise)
func NewClient(address, token, namespace string) (*Client, error) {
	// Create default config (reads from VAULT_ADDR, VAULT_CACERT, etc.)
	config := vault.DefaultConfig()
	if config.Error != nil {
		return nil, fmt.Errorf("failed to read Vault environment: %w", config.Error)
	}

	// DefaultConfig falls back to a local address, so require an explicit one
	if address == "" {
		address = os.Getenv("VAULT_ADDR")
	}
	if address == "" {
		return nil, fmt.Errorf("vault address not set (set address in config or VAULT_ADDR)")
	}
	config.Address = address

	client, err := vault.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("vault token not set (set token in config or VAULT_TOKEN)")
	}
	client.SetToken(token)

	// Set namespace if provided (required for Vault Enterprise)
	if namespace == "" {
		namespace = os.Getenv("VAULT_NAMESPACE")
	}
	if namespace != "" {
		client.SetNamespace(namespace)
	}

	return &Client{
		client: client,
	}, nil
}

// ListKeys lists the keys directly under secretPath in a KV v2 mount.
// Sub-directories end with "/".
func (c *Client) ListKeys(ctx context.Context, mount, secretPath string) ([]string, error) {
	// For KV v2, we need to use the metadata path
	path := fmt.Sprintf("%s/metadata/%s", strings.Trim(mount, "/"), secretPath)

	secret, err := c.client.Logical().ListWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	// No secrets found
	if secret == nil || secret.Data == nil {
		return []string{}, nil
	}

	raw, ok := secret.Data["keys"].([]interface{})
	if !ok {
		return []string{}, nil
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		if s, ok := k.(string); ok {
			keys = append(keys, s)
		}
	}
	return keys, nil
}

// ReadSecret retrieves the data of the latest version of a secret in a
// KV v2 mount
func (c *Client) ReadSecret(ctx context.Context, mount, secretPath string) (map[string]interface{}, error) {
	// For KV v2, we need to use the data path
	path := fmt.Sprintf("%s/data/%s", strings.Trim(mount, "/"), secretPath)

	secret, err := c.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if secret == nil || secret.Data == nil {
		return nil, errSecretNotFound
	}

	// KV v2 stores the actual secret data under the "data" key. A deleted
	// latest version reports data as null.
	if secret.Data["data"] == nil {
		return nil, errSecretNotFound
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid secret data format at %s", path)
	}

	return data, nil
}
