package aws

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// ProviderName is the registry name of the AWS Secrets Manager provider
const ProviderName = "aws"

// Modes select how the store is reached
const (
	ModeCLI = "cli"
	ModeSDK = "sdk"
)

// CLIProvider implements provider.Provider by shelling out to the aws CLI
type CLIProvider struct {
	client *Client
}

// NewProvider creates a new AWS Secrets Manager provider
// Configuration options:
//   - "mode" (string): "cli" (default) or "sdk"
//   - "cli_path" (string): aws executable, cli mode only
//   - "profile" (string): named AWS profile
//   - "region" (string): AWS region
//   - "timeout" (string): per-command timeout such as "30s", cli mode only
//   - "endpoint", "access_key_id", "secret_access_key" (string): sdk mode only
//
// Profile and region fall back to the usual AWS_PROFILE / AWS_REGION
// handling of the CLI or SDK when not set.
func NewProvider(cfg *provider.Config) (provider.Provider, error) {
	mode := cfg.String("mode")
	switch mode {
	case "", ModeCLI:
		opts := []ClientOption{
			WithCLIPath(cfg.String("cli_path")),
			WithProfile(cfg.String("profile")),
			WithRegion(cfg.String("region")),
		}
		if raw := cfg.String("timeout"); raw != "" {
			timeout, err := time.ParseDuration(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid aws timeout %q: %w", raw, err)
			}
			opts = append(opts, WithTimeout(timeout))
		}
		return NewCLIProvider(NewClient(opts...)), nil

	case ModeSDK:
		p, err := NewSDKProvider(context.Background(), SDKConfig{
			Region:          cfg.String("region"),
			Profile:         cfg.String("profile"),
			Endpoint:        cfg.String("endpoint"),
			AccessKeyID:     cfg.String("access_key_id"),
			SecretAccessKey: cfg.String("secret_access_key"),
		})
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown aws mode %q (expected %q or %q)", mode, ModeCLI, ModeSDK)
	}
}

// NewCLIProvider wraps an existing CLI client
func NewCLIProvider(client *Client) *CLIProvider {
	return &CLIProvider{client: client}
}

// Name returns the provider name
func (p *CLIProvider) Name() string {
	return ProviderName
}

type listSecretsOutput struct {
	SecretList *[]struct {
		ARN  string `json:"ARN"`
		Name string `json:"Name"`
	} `json:"SecretList"`
}

// ListSecrets runs `aws secretsmanager list-secrets`. The CLI follows
// pagination tokens itself.
func (p *CLIProvider) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	output, err := p.client.Execute(ctx, "secretsmanager", "list-secrets")
	if err != nil {
		return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: err}
	}

	var result listSecretsOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: fmt.Errorf("failed to parse output: %w", err)}
	}
	if result.SecretList == nil {
		return nil, &provider.TransportError{Provider: ProviderName, Op: "list-secrets", Err: fmt.Errorf("output has no SecretList")}
	}

	secrets := make([]models.SecretSummary, 0, len(*result.SecretList))
	for _, s := range *result.SecretList {
		secrets = append(secrets, models.SecretSummary{Name: s.Name, ID: s.ARN})
	}
	return secrets, nil
}

type getSecretValueOutput struct {
	SecretString *string `json:"SecretString"`
	SecretBinary string  `json:"SecretBinary"`
}

// GetSecretValue runs `aws secretsmanager get-secret-value --secret-id ID`
func (p *CLIProvider) GetSecretValue(ctx context.Context, id string) (string, error) {
	output, err := p.client.Execute(ctx, "secretsmanager", "get-secret-value", "--secret-id", id)
	if err != nil {
		if isNotFound(err) {
			return "", &provider.NotFoundError{Provider: ProviderName, ID: id}
		}
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: err}
	}

	var result getSecretValueOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: fmt.Errorf("failed to parse output: %w", err)}
	}

	if result.SecretString != nil {
		return *result.SecretString, nil
	}
	if result.SecretBinary != "" {
		decoded, err := base64.StdEncoding.DecodeString(result.SecretBinary)
		if err != nil {
			return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: fmt.Errorf("failed to decode SecretBinary: %w", err)}
		}
		return string(decoded), nil
	}

	return "", &provider.TransportError{Provider: ProviderName, Op: "get-secret-value", ID: id, Err: fmt.Errorf("secret has no value")}
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "ResourceNotFoundException")
}
