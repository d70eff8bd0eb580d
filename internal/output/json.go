package output

import (
	"encoding/json"

	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// JSONFormatter outputs JSON format
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatSecrets formats secrets as JSON
func (f *JSONFormatter) FormatSecrets(secrets []models.SecretSummary) (string, error) {
	if secrets == nil {
		secrets = []models.SecretSummary{}
	}
	return marshalJSON(secrets)
}

// FormatRows formats session rows as JSON
func (f *JSONFormatter) FormatRows(rows []session.Row) (string, error) {
	if rows == nil {
		rows = []session.Row{}
	}
	return marshalJSON(rows)
}

// FormatProviders formats providers as JSON
func (f *JSONFormatter) FormatProviders(providers []models.ProviderInfo) (string, error) {
	if providers == nil {
		providers = []models.ProviderInfo{}
	}
	return marshalJSON(providers)
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
