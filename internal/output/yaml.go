package output

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// YAMLFormatter outputs YAML format
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// FormatSecrets formats secrets as a YAML sequence
func (f *YAMLFormatter) FormatSecrets(secrets []models.SecretSummary) (string, error) {
	if secrets == nil {
		secrets = []models.SecretSummary{}
	}
	return marshalYAML(secrets)
}

// FormatRows formats session rows as a YAML sequence
func (f *YAMLFormatter) FormatRows(rows []session.Row) (string, error) {
	if rows == nil {
		rows = []session.Row{}
	}
	return marshalYAML(rows)
}

// FormatProviders formats providers as a YAML sequence
func (f *YAMLFormatter) FormatProviders(providers []models.ProviderInfo) (string, error) {
	if providers == nil {
		providers = []models.ProviderInfo{}
	}
	return marshalYAML(providers)
}

func marshalYAML(v any) (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
