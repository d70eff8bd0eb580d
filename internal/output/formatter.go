package output

import (
	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// Format represents the output format type
type Format string

const (
	// FormatPlain is plain text format (one item per line)
	FormatPlain Format = "plain"
	// FormatJSON is JSON format
	FormatJSON Format = "json"
	// FormatYAML is YAML format
	FormatYAML Format = "yaml"
)

// Formatter formats data for output
type Formatter interface {
	FormatSecrets(secrets []models.SecretSummary) (string, error)
	FormatRows(rows []session.Row) (string, error)
	FormatProviders(providers []models.ProviderInfo) (string, error)
}
