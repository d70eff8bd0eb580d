package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigDir is the default directory for config files
	DefaultConfigDir = ".config/smart-secrets"
	// DefaultConfigName is the default config file name (without extension)
	DefaultConfigName = "config"
	// EnvPrefix prefixes environment overrides, e.g. SMART_SECRETS_LOG_LEVEL
	EnvPrefix = "SMART_SECRETS"
)

var (
	// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
	envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)
)

// Load loads configuration from file, environment variables, and defaults
// Configuration precedence (highest to lowest):
// 1. Environment variables (prefixed with SMART_SECRETS_)
// 2. Config file (~/.config/smart-secrets/config.yaml)
// 3. Default values
func Load() (*Config, error) {
	v := newViper()

	// Set config file location
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir, DefaultConfigDir))

	// Read config file (optional - don't error if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file found but has error
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - continue with defaults and env vars
	}

	return decode(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set environment variable prefix and automatic binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Perform environment variable substitution
	substituteEnvVars(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.provider", ProviderAWS)
	v.SetDefault("defaults.instance", "")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Filters defaults
	v.SetDefault("filters.enabled_only", true)

	// Provider defaults
	v.SetDefault("providers.aws.enabled", true)
	v.SetDefault("providers.azure.enabled", true)
	v.SetDefault("providers.hashicorp.enabled", true)
}

// substituteEnvVars replaces ${VAR} or $VAR patterns with environment variable values
func substituteEnvVars(cfg *Config) {
	if cfg.Providers.AWS != nil {
		for i := range cfg.Providers.AWS.Instances {
			inst := &cfg.Providers.AWS.Instances[i]
			inst.Profile = expandEnvVars(inst.Profile)
			inst.Region = expandEnvVars(inst.Region)
			inst.Endpoint = expandEnvVars(inst.Endpoint)
			inst.CLIPath = expandEnvVars(inst.CLIPath)
		}
	}

	if cfg.Providers.Azure != nil {
		for i := range cfg.Providers.Azure.Instances {
			inst := &cfg.Providers.Azure.Instances[i]
			inst.VaultURL = expandEnvVars(inst.VaultURL)
			inst.TenantID = expandEnvVars(inst.TenantID)
		}
	}

	if cfg.Providers.Hashicorp != nil {
		for i := range cfg.Providers.Hashicorp.Instances {
			inst := &cfg.Providers.Hashicorp.Instances[i]
			inst.Address = expandEnvVars(inst.Address)
			inst.Token = expandEnvVars(inst.Token)
			inst.Namespace = expandEnvVars(inst.Namespace)
		}
	}
}

// expandEnvVars expands environment variables in a string
// Supports both ${VAR_NAME} and $VAR_NAME formats
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name (handle both ${VAR} and $VAR)
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1] // Remove ${ and }
		} else {
			varName = match[1:] // Remove $
		}

		// Get environment variable value
		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if not found
		return match
	})
}

// ValidateLogLevel rejects levels the logger does not know
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level '%s'", level)
	}
}

// validate validates the configuration
func validate(cfg *Config) error {
	if err := ValidateLogLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format '%s'", cfg.Log.Format)
	}

	if cfg.Providers.AWS != nil {
		for i, inst := range cfg.Providers.AWS.Instances {
			if inst.Name == "" {
				return fmt.Errorf("aws instance at index %d has no name", i)
			}
			switch inst.Mode {
			case "", "cli", "sdk":
			default:
				return fmt.Errorf("aws instance '%s' has unknown mode '%s'", inst.Name, inst.Mode)
			}
			if inst.Timeout != "" {
				if _, err := time.ParseDuration(inst.Timeout); err != nil {
					return fmt.Errorf("aws instance '%s' has invalid timeout '%s'", inst.Name, inst.Timeout)
				}
			}
		}
	}

	if cfg.Providers.Azure != nil {
		for i, inst := range cfg.Providers.Azure.Instances {
			if inst.Name == "" {
				return fmt.Errorf("azure instance at index %d has no name", i)
			}
			if inst.VaultURL == "" {
				return fmt.Errorf("azure instance '%s' has no vault_url", inst.Name)
			}
		}
	}

	if cfg.Providers.Hashicorp != nil {
		for i, inst := range cfg.Providers.Hashicorp.Instances {
			if inst.Name == "" {
				return fmt.Errorf("hashicorp instance at index %d has no name", i)
			}
			if inst.Address == "" {
				return fmt.Errorf("hashicorp instance '%s' has no address", inst.Name)
			}
		}
	}

	return nil
}
