package aws

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
// This allows for mocking in tests
type SecretsManagerAPI interface {
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SDKConfig holds settings for the SDK-backed provider
type SDKConfig struct {
	Region          string
	Profile         string
	Endpoint        string // Optional custom endpoint for LocalStack or testing
	AccessKeyID     string
	SecretAccessKey string
}

// SDKProvider implements provider.Provider with aws-sdk-go-v2
type SDKProvider struct {
	client SecretsManagerAPI
}

// NewSDKProvider loads the default AWS config and builds a Secrets Manager client
func NewSDKProvider(ctx context.Context, cfg SDKConfig) (*SDKProvider, error) {
	var configOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		configOpts = append(configOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(cfg.Profile))
	}
	// Static credentials are only meant for LocalStack and similar test endpoints
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOpts []func(*secretsmanager.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		clientOpts = append(clientOpts, func(o *secretsmanager.Options) {
			o.BaseEndpoint = &endpoint
		})
	}

	return NewSDKProviderWithClient(secretsmanager.NewFromConfig(awsCfg, clientOpts...)), nil
}

// NewSDKProviderWithClient wraps an existing client
func NewSDKProviderWithClient(client SecretsManagerAPI) *SDKProvider {
	return &SDKProvider{client: client}
}

// Name returns the provider name
func (p *SDKProvider) Name() string {
	return ProviderName
}

// ListSecrets walks every page of ListSecrets
func (p *SDKProvider) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	secrets := make([]models.SecretSummary, 0)

	paginator := secretsmanager.NewListSecretsPaginator(p.client, &secretsmanager.ListSecretsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: err}
		}
		for _, entry := range page.SecretList {
			secrets = append(secrets, models.SecretSummary{
				Name: sdkaws.ToString(entry.Name),
				ID:   sdkaws.ToString(entry.ARN),
			})
		}
	}

	return secrets, nil
}

// GetSecretValue fetches the current version of a secret
func (p *SDKProvider) GetSecretValue(ctx context.Context, id string) (string, error) {
	result, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: sdkaws.String(id),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", &provider.NotFoundError{Provider: ProviderName, ID: id}
		}
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: err}
	}

	if result.SecretString != nil {
		return *result.SecretString, nil
	}
	if result.SecretBinary != nil {
		return string(result.SecretBinary), nil
	}

	return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: fmt.Errorf("secret has no value")}
}
