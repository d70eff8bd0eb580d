package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

type staticProvider struct{}

func (staticProvider) Name() string { return "static" }

func (staticProvider) ListSecrets(ctx context.Context) ([]models.SecretSummary, error) {
	return []models.SecretSummary{
		{Name: "db", ID: "static/db"},
		{Name: "token", ID: "static/token"},
	}, nil
}

func (staticProvider) GetSecretValue(ctx context.Context, id string) (string, error) {
	switch id {
	case "static/db":
		return `{"user":"admin","password":"hunter2"}`, nil
	case "static/token":
		return "tok-123", nil
	}
	return "", &provider.NotFoundError{Provider: "static", ID: id}
}

func init() {
	provider.Register("static", func(cfg *provider.Config) (provider.Provider, error) {
		return staticProvider{}, nil
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  provider: static\nlog:\n  level: error\n"), 0o600))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config", path))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListProviders(t *testing.T) {
	out, err := execute(t, "list-providers", "-f", "json")
	require.NoError(t, err)

	var infos []models.ProviderInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Equal(t, []models.ProviderInfo{
		{Name: "aws", Enabled: true},
		{Name: "azure", Enabled: true},
		{Name: "hashicorp", Enabled: true},
		{Name: "static", Enabled: false},
	}, infos)
}

func TestListSecrets(t *testing.T) {
	out, err := execute(t, "list-secrets")
	require.NoError(t, err)
	assert.Equal(t, "db     static/db\ntoken  static/token\n", out)
}

func TestShowSecret(t *testing.T) {
	out, err := execute(t, "show-secret", "static/db")
	require.NoError(t, err)
	assert.Equal(t, "user      ******\npassword  ******\n", out)

	out, err = execute(t, "show-secret", "static/db", "--reveal", "user", "--reveal", "user")
	require.NoError(t, err)
	assert.Equal(t, "user      admin\npassword  ******\n", out)

	out, err = execute(t, "show-secret", "static/token", "--reveal-all", "-f", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"static/token","value":"tok-123","revealed":true}]`, out)

	_, err = execute(t, "show-secret", "static/db", "--reveal", "host")
	assert.True(t, session.IsUnknownField(err))

	_, err = execute(t, "show-secret", "static/missing")
	assert.True(t, provider.IsNotFound(err))
}

func TestGetSecret(t *testing.T) {
	out, err := execute(t, "get-secret", "static/token")
	require.NoError(t, err)
	assert.Equal(t, "tok-123\n", out)

	out, err = execute(t, "get-secret", "static/db", "--key", "password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2\n", out)

	_, err = execute(t, "get-secret", "static/db")
	assert.EqualError(t, err, "secret static/db has fields user, password; pick one with --key")
}

func TestUnknownFormat(t *testing.T) {
	_, err := execute(t, "list-secrets", "-f", "xml")
	assert.ErrorContains(t, err, "unsupported format: xml")
}

func TestLogLevelFlag(t *testing.T) {
	_, err := execute(t, "list-secrets", "--log-level", "verbose")
	assert.EqualError(t, err, "failed to load config: --log-level: unknown log level 'verbose'")

	out, err := execute(t, "list-secrets", "--log-level", "debug")
	require.NoError(t, err)
	assert.Equal(t, "db     static/db\ntoken  static/token\n", out)
}
