package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// PlainFormatter outputs plain text (one item per line)
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// FormatSecrets formats secrets as aligned "name id" lines
func (f *PlainFormatter) FormatSecrets(secrets []models.SecretSummary) (string, error) {
	if len(secrets) == 0 {
		return "", nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, s := range secrets {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, s.ID)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// FormatRows formats session rows as aligned "key value" lines
func (f *PlainFormatter) FormatRows(rows []session.Row) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r.Key, r.Display)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// FormatProviders formats providers as aligned "name status instances" lines
func (f *PlainFormatter) FormatProviders(providers []models.ProviderInfo) (string, error) {
	if len(providers) == 0 {
		return "", nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	for _, p := range providers {
		status := "disabled"
		if p.Enabled {
			status = "enabled"
		}
		fmt.Fprintf(w, "%s\t%s", p.Name, status)
		if len(p.Instances) > 0 {
			fmt.Fprintf(w, "\t%s", strings.Join(p.Instances, ","))
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
