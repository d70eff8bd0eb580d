package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// ProviderName is the registry name of the Azure Key Vault provider
const ProviderName = "azure"

// Provider implements the provider.Provider interface for Azure Key Vault
type Provider struct {
	client      SecretsAPI
	enabledOnly bool
}

// NewProvider creates a new Azure Key Vault provider
// Configuration options:
//   - "vault_url" (string): Key Vault URL, e.g. https://myvault.vault.azure.net/
//   - "tenant_id" (string): Entra tenant (optional)
//   - "enabled_only" (bool): hide disabled secrets from listings
//
// If vault_url is not provided in config, it is read from the
// AZURE_KEYVAULT_URL environment variable.
func NewProvider(cfg *provider.Config) (provider.Provider, error) {
	vaultURL := cfg.String("vault_url")

	// Fallback to environment variable
	if vaultURL == "" {
		vaultURL = os.Getenv("AZURE_KEYVAULT_URL")
	}

	if vaultURL == "" {
		return nil, fmt.Errorf("vault_url is required for Azure provider (set via config or AZURE_KEYVAULT_URL env var)")
	}

	client, err := NewClient(vaultURL, cfg.String("tenant_id"))
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	return NewProviderWithClient(client, cfg.Bool("enabled_only")), nil
}

// NewProviderWithClient wraps an existing client
func NewProviderWithClient(client SecretsAPI, enabledOnly bool) *Provider {
	return &Provider{client: client, enabledOnly: enabledOnly}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderName
}

// ListSecrets returns every secret of the vault. IDs are the versionless
// secret URLs.
func (p *Provider) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	secrets := make([]models.SecretSummary, 0)

	pager := p.client.NewListSecretPropertiesPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: err}
		}

		for _, props := range page.Value {
			if props == nil || props.ID == nil {
				continue
			}
			if p.enabledOnly && props.Attributes != nil && props.Attributes.Enabled != nil && !*props.Attributes.Enabled {
				continue
			}
			id := string(*props.ID)
			secrets = append(secrets, models.SecretSummary{Name: secretName(id), ID: id})
		}
	}

	return secrets, nil
}

// GetSecretValue retrieves the latest version of a secret. id may be a
// secret URL or a bare secret name.
func (p *Provider) GetSecretValue(ctx context.Context, id string) (string, error) {
	resp, err := p.client.GetSecret(ctx, secretName(id), "", nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return "", &provider.NotFoundError{Provider: ProviderName, ID: id}
		}
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: err}
	}

	if resp.Value == nil {
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: fmt.Errorf("secret has no value")}
	}

	return *resp.Value, nil
}

// secretName extracts the name from https://<vault>/secrets/<name>[/<version>]
func secretName(id string) string {
	idx := strings.Index(id, "/secrets/")
	if idx == -1 {
		return id
	}
	rest := id[idx+len("/secrets/"):]
	if slash := strings.Index(rest, "/"); slash != -1 {
		rest = rest[:slash]
	}
	return rest
}
