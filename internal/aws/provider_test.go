package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

const listOutput = `{
    "SecretList": [
        {
            "ARN": "arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/db-AbCdEf",
            "Name": "prod/db",
            "LastChangedDate": "2024-03-01T10:00:00+00:00",
            "SecretVersionsToStages": {"v1": ["AWSCURRENT"]}
        },
        {
            "ARN": "arn:aws:secretsmanager:us-east-1:123456789012:secret:api-token-GhIjKl",
            "Name": "api-token"
        }
    ]
}`

func newTestProvider(runner *fakeRunner) *CLIProvider {
	return NewCLIProvider(NewClient(WithRunner(runner)))
}

func TestCLIProvider_ListSecrets(t *testing.T) {
	t.Parallel()

	runner := newFakeRunner()
	runner.on("list-secrets", fakeResponse{stdout: listOutput})
	p := newTestProvider(runner)

	secrets, err := p.ListSecrets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SecretSummary{
		{Name: "prod/db", ID: "arn:aws:secretsmanager:us-east-1:123456789012:secret:prod/db-AbCdEf"},
		{Name: "api-token", ID: "arn:aws:secretsmanager:us-east-1:123456789012:secret:api-token-GhIjKl"},
	}, secrets)
	assert.Equal(t, "aws", p.Name())
}

func TestCLIProvider_ListSecretsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		resp    fakeResponse
		wantMsg string
	}{
		{
			name:    "process failure",
			resp:    fakeResponse{stderr: "could not connect to the endpoint URL", err: errors.New("exit status 255")},
			wantMsg: "aws list-secrets failed: aws cli error: could not connect to the endpoint URL",
		},
		{
			name:    "not json",
			resp:    fakeResponse{stdout: "Secrets: none"},
			wantMsg: "failed to parse output",
		},
		{
			name:    "missing SecretList",
			resp:    fakeResponse{stdout: `{"NextToken":"abc"}`},
			wantMsg: "output has no SecretList",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := newFakeRunner()
			runner.on("list-secrets", tt.resp)

			_, err := newTestProvider(runner).ListSecrets(context.Background())
			require.Error(t, err)
			assert.True(t, provider.IsTransport(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCLIProvider_GetSecretValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "secret string",
			out:  `{"ARN":"arn:1","Name":"prod/db","SecretString":"{\"user\":\"admin\",\"pass\":\"x1\"}"}`,
			want: `{"user":"admin","pass":"x1"}`,
		},
		{
			name: "empty secret string",
			out:  `{"ARN":"arn:1","SecretString":""}`,
			want: "",
		},
		{
			name: "secret binary",
			out:  `{"ARN":"arn:1","SecretBinary":"cGxhaW4tc2VjcmV0LTEyMw=="}`,
			want: "plain-secret-123",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runner := newFakeRunner()
			runner.on("get-secret-value", fakeResponse{stdout: tt.out})

			got, err := newTestProvider(runner).GetSecretValue(context.Background(), "arn:1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"secretsmanager", "get-secret-value", "--secret-id", "arn:1", "--output", "json"}, runner.lastCall().Args)
		})
	}
}

func TestCLIProvider_GetSecretValueErrors(t *testing.T) {
	t.Parallel()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		runner := newFakeRunner()
		runner.on("get-secret-value", fakeResponse{
			stderr: "An error occurred (ResourceNotFoundException) when calling the GetSecretValue operation: Secrets Manager can't find the specified secret.",
			err:    errors.New("exit status 254"),
		})

		_, err := newTestProvider(runner).GetSecretValue(context.Background(), "arn:gone")
		require.Error(t, err)
		assert.True(t, provider.IsNotFound(err))
		assert.EqualError(t, err, "secret not found in aws: arn:gone")
	})

	t.Run("access denied", func(t *testing.T) {
		t.Parallel()

		runner := newFakeRunner()
		runner.on("get-secret-value", fakeResponse{
			stderr: "An error occurred (AccessDeniedException) when calling the GetSecretValue operation",
			err:    errors.New("exit status 254"),
		})

		_, err := newTestProvider(runner).GetSecretValue(context.Background(), "arn:locked")
		require.Error(t, err)
		assert.True(t, provider.IsTransport(err))
		assert.False(t, provider.IsNotFound(err))
		assert.Contains(t, err.Error(), "arn:locked")
	})

	t.Run("no value", func(t *testing.T) {
		t.Parallel()

		runner := newFakeRunner()
		runner.on("get-secret-value", fakeResponse{stdout: `{"ARN":"arn:1"}`})

		_, err := newTestProvider(runner).GetSecretValue(context.Background(), "arn:1")
		assert.True(t, provider.IsTransport(err))
		assert.Contains(t, err.Error(), "secret has no value")
	})

	t.Run("bad binary", func(t *testing.T) {
		t.Parallel()

		runner := newFakeRunner()
		runner.on("get-secret-value", fakeResponse{stdout: `{"SecretBinary":"%%%"}`})

		_, err := newTestProvider(runner).GetSecretValue(context.Background(), "arn:1")
		assert.True(t, provider.IsTransport(err))
		assert.Contains(t, err.Error(), "failed to decode SecretBinary")
	})
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(&provider.Config{Name: "aws", Settings: map[string]interface{}{
		"profile": "prod",
		"timeout": "5s",
	}})
	require.NoError(t, err)
	cli, ok := p.(*CLIProvider)
	require.True(t, ok)
	assert.Equal(t, "prod", cli.client.profile)
	assert.Equal(t, "5s", cli.client.timeout.String())

	_, err = NewProvider(&provider.Config{Settings: map[string]interface{}{"timeout": "soon"}})
	assert.ErrorContains(t, err, `invalid aws timeout "soon"`)

	_, err = NewProvider(&provider.Config{Settings: map[string]interface{}{"mode": "grpc"}})
	assert.ErrorContains(t, err, `unknown aws mode "grpc"`)

	p, err = NewProvider(nil)
	require.NoError(t, err)
	assert.IsType(t, &CLIProvider{}, p)
}

func TestNewProvider_SDKMode(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(&provider.Config{Settings: map[string]interface{}{
		"mode":              "sdk",
		"region":            "us-east-1",
		"endpoint":          "http://localhost:4566",
		"access_key_id":     "test",
		"secret_access_key": "test",
	}})
	require.NoError(t, err)
	assert.IsType(t, &SDKProvider{}, p)
	assert.Equal(t, "aws", p.Name())
}
