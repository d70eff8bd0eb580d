package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
defaults:
  provider: hashicorp
log:
  level: debug
  format: json
filters:
  enabled_only: false
providers:
  aws:
    instances:
      - name: prod
        profile: prod
        region: eu-west-1
        timeout: 10s
      - name: staging
        mode: sdk
        region: us-east-1
        endpoint: http://localhost:4566
        default: true
  azure:
    instances:
      - name: kv
        vault_url: ${TEST_KV_URL}
  hashicorp:
    instances:
      - name: local
        address: http://127.0.0.1:8200
        token: $TEST_VAULT_TOKEN
        mount: kv
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_KV_URL", "https://example.vault.azure.net/")
	t.Setenv("TEST_VAULT_TOKEN", "s.from-env")

	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "hashicorp", cfg.Defaults.Provider)
	assert.Equal(t, Log{Level: "debug", Format: "json"}, cfg.Log)
	assert.False(t, cfg.Filters.EnabledOnly)
	assert.Equal(t, []string{"aws", "azure", "hashicorp"}, cfg.GetEnabledProviders())
	assert.Equal(t, []string{"prod", "staging"}, cfg.InstanceNames("aws"))
	assert.Nil(t, cfg.InstanceNames("gcp"))

	aws, err := cfg.GetDefaultAWSInstance()
	require.NoError(t, err)
	assert.Equal(t, "staging", aws.Name)
	assert.Equal(t, "http://localhost:4566", aws.Endpoint)

	prod, err := cfg.GetAWSInstance("prod")
	require.NoError(t, err)
	assert.Equal(t, "10s", prod.Timeout)

	kv, err := cfg.GetDefaultAzureInstance()
	require.NoError(t, err)
	assert.Equal(t, "https://example.vault.azure.net/", kv.VaultURL)

	local, err := cfg.GetHashicorpInstance("local")
	require.NoError(t, err)
	assert.Equal(t, "s.from-env", local.Token)

	_, err = cfg.GetHashicorpInstance("remote")
	assert.EqualError(t, err, "hashicorp instance 'remote' not found")
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("SMART_SECRETS_LOG_LEVEL", "warn")

	cfg, err := LoadFromFile(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "aws", cfg.Defaults.Provider)
	assert.True(t, cfg.Filters.EnabledOnly)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := map[string]struct {
		body string
		want string
	}{
		"log level": {
			body: "log:\n  level: loud\n",
			want: "unknown log level 'loud'",
		},
		"aws mode": {
			body: "providers:\n  aws:\n    instances:\n      - name: a\n        mode: grpc\n",
			want: "aws instance 'a' has unknown mode 'grpc'",
		},
		"aws timeout": {
			body: "providers:\n  aws:\n    instances:\n      - name: a\n        timeout: soon\n",
			want: "aws instance 'a' has invalid timeout 'soon'",
		},
		"azure vault url": {
			body: "providers:\n  azure:\n    instances:\n      - name: kv\n",
			want: "azure instance 'kv' has no vault_url",
		},
		"hashicorp name": {
			body: "providers:\n  hashicorp:\n    instances:\n      - address: http://x\n",
			want: "hashicorp instance at index 0 has no name",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		assert.NoError(t, ValidateLogLevel(level), level)
	}
	assert.EqualError(t, ValidateLogLevel("verbose"), "unknown log level 'verbose'")
	assert.Error(t, ValidateLogLevel(""))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "aws", cfg.Defaults.Provider)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestProviderConfig(t *testing.T) {
	t.Setenv("TEST_KV_URL", "https://example.vault.azure.net/")
	t.Setenv("TEST_VAULT_TOKEN", "s.from-env")

	cfg, err := LoadFromFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	// Defaults select hashicorp and its only instance
	pc, err := cfg.ProviderConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "hashicorp", pc.Name)
	assert.Equal(t, "local", pc.Instance)
	assert.Equal(t, "kv", pc.String("mount"))

	pc, err = cfg.ProviderConfig("aws", "prod")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", pc.String("region"))
	assert.Equal(t, "10s", pc.String("timeout"))

	pc, err = cfg.ProviderConfig("azure", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.vault.azure.net/", pc.String("vault_url"))
	assert.False(t, pc.Bool("enabled_only"))

	_, err = cfg.ProviderConfig("aws", "dev")
	assert.EqualError(t, err, "aws instance 'dev' not found")

	pc, err = cfg.ProviderConfig("gcp", "")
	require.NoError(t, err)
	assert.Equal(t, "gcp", pc.Name)
}

func TestProviderConfig_EnvOnly(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "providers:\n  azure:\n    enabled: false\n"))
	require.NoError(t, err)

	pc, err := cfg.ProviderConfig("aws", "")
	require.NoError(t, err)
	assert.Empty(t, pc.Instance)
	assert.Empty(t, pc.Settings)

	_, err = cfg.ProviderConfig("azure", "")
	assert.EqualError(t, err, "azure provider is disabled in config")
}
