package hashicorp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// ProviderName is the registry name of the HashiCorp Vault provider
const ProviderName = "hashicorp"

// DefaultMount is the KV v2 mount used when none is configured
const DefaultMount = "secret"

// Provider implements the provider.Provider interface for one KV v2 mount
// of HashiCorp Vault
type Provider struct {
	client *Client
	mount  string
}

// NewProvider creates a new HashiCorp Vault provider
// Configuration options:
//   - "address" (string): Vault server address
//   - "token" (string): Vault authentication token
//   - "namespace" (string): Vault namespace (optional, for Enterprise)
//   - "mount" (string): KV v2 mount path, "secret" by default
func NewProvider(cfg *provider.Config) (provider.Provider, error) {
	client, err := NewClient(cfg.String("address"), cfg.String("token"), cfg.String("namespace"))
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	return NewProviderWithClient(client, cfg.String("mount")), nil
}

// NewProviderWithClient wraps an existing client
func NewProviderWithClient(client *Client, mount string) *Provider {
	mount = strings.Trim(mount, "/")
	if mount == "" {
		mount = DefaultMount
	}
	return &Provider{client: client, mount: mount}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderName
}

// ListSecrets walks the mount depth-first and returns every secret it finds.
// IDs have the form "<mount>/<path>".
func (p *Provider) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	secrets := make([]models.SecretSummary, 0)
	if err := p.walk(ctx, "", &secrets); err != nil {
		return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: err}
	}
	return secrets, nil
}

func (p *Provider) walk(ctx context.Context, dir string, out *[]models.SecretSummary) error {
	keys, err := p.client.ListKeys(ctx, p.mount, dir)
	if err != nil {
		return err
	}

	for _, key := range keys {
		full := dir + key
		// Directories end with /
		if strings.HasSuffix(key, "/") {
			if err := p.walk(ctx, full, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, models.SecretSummary{Name: full, ID: p.mount + "/" + full})
	}
	return nil
}

// GetSecretValue reads the latest version of a secret and returns its data
// as a JSON object. id may be "<mount>/<path>" or a path within the mount.
func (p *Provider) GetSecretValue(ctx context.Context, id string) (string, error) {
	path := strings.TrimPrefix(id, p.mount+"/")

	data, err := p.client.ReadSecret(ctx, p.mount, path)
	if err != nil {
		if errors.Is(err, errSecretNotFound) {
			return "", &provider.NotFoundError{Provider: ProviderName, ID: id}
		}
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: err}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: err}
	}
	return string(raw), nil
}
