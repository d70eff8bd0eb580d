package models

// ProviderInfo holds metadata about a registered provider
type ProviderInfo struct {
	Name      string   `json:"name" yaml:"name"`
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	Instances []string `json:"instances,omitempty" yaml:"instances,omitempty"`
}
