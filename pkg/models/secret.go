package models

// SecretSummary identifies a secret in a store without its value.
// ID is the stable unique identifier (ARN, Key Vault secret URL, mount/path);
// Name is a display label and may repeat.
type SecretSummary struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}
