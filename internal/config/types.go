package config

// Config represents the complete application configuration
type Config struct {
	Defaults  Defaults  `mapstructure:"defaults"`
	Log       Log       `mapstructure:"log"`
	Providers Providers `mapstructure:"providers"`
	Filters   Filters   `mapstructure:"filters"`
}

// Defaults holds default values for provider and instance selection
type Defaults struct {
	Provider string `mapstructure:"provider"`
	Instance string `mapstructure:"instance"`
}

// Log holds logger settings
type Log struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// Providers holds configuration for all secret providers
type Providers struct {
	AWS       *AWSConfig       `mapstructure:"aws"`
	Azure     *AzureConfig     `mapstructure:"azure"`
	Hashicorp *HashicorpConfig `mapstructure:"hashicorp"`
}

// AWSConfig holds AWS Secrets Manager provider configuration
type AWSConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Instances []AWSInstance `mapstructure:"instances"`
}

// AWSInstance represents a single AWS account/region configuration
type AWSInstance struct {
	Name     string `mapstructure:"name"`
	Mode     string `mapstructure:"mode"` // cli or sdk
	CLIPath  string `mapstructure:"cli_path"`
	Profile  string `mapstructure:"profile"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Timeout  string `mapstructure:"timeout"`
	Default  bool   `mapstructure:"default"`
}

// AzureConfig holds Azure KeyVault provider configuration
type AzureConfig struct {
	Enabled   bool            `mapstructure:"enabled"`
	Instances []AzureInstance `mapstructure:"instances"`
}

// AzureInstance represents a single Key Vault configuration
type AzureInstance struct {
	Name     string `mapstructure:"name"`
	VaultURL string `mapstructure:"vault_url"`
	TenantID string `mapstructure:"tenant_id"`
	Default  bool   `mapstructure:"default"`
}

// HashicorpConfig holds Hashicorp Vault provider configuration
type HashicorpConfig struct {
	Enabled   bool                `mapstructure:"enabled"`
	Instances []HashicorpInstance `mapstructure:"instances"`
}

// HashicorpInstance represents a single Vault server configuration
type HashicorpInstance struct {
	Name      string `mapstructure:"name"`
	Address   string `mapstructure:"address"`
	Token     string `mapstructure:"token"`
	Namespace string `mapstructure:"namespace"`
	Mount     string `mapstructure:"mount"`
	Default   bool   `mapstructure:"default"`
}

// Filters holds filtering options for secrets
type Filters struct {
	EnabledOnly bool `mapstructure:"enabled_only"`
}
