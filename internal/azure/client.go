package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// SecretsAPI is the subset of azsecrets.Client used by the provider.
// This allows for mocking in tests
type SecretsAPI interface {
	NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse]
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// NewClient creates a Key Vault secrets client for vaultURL using the default
// Azure credential chain (environment, workload identity, managed identity, az CLI)
func NewClient(vaultURL, tenantID string) (*azsecrets.Client, error) {
	var credOpts *azidentity.DefaultAzureCredentialOptions
	if tenantID != "" {
		credOpts = &azidentity.DefaultAzureCredentialOptions{TenantID: tenantID}
	}

	cred, err := azidentity.NewDefaultAzureCredential(credOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	return client, nil
}
