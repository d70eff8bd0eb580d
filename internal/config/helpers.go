package config

import (
	"fmt"

	"github.com/ylchen07/smart-secrets/internal/provider"
)

// Provider names as used in the config file and the provider registry
const (
	ProviderAWS       = "aws"
	ProviderAzure     = "azure"
	ProviderHashicorp = "hashicorp"
)

type instance interface {
	name() string
	isDefault() bool
	settings() map[string]interface{}
}

func (i AWSInstance) name() string    { return i.Name }
func (i AWSInstance) isDefault() bool { return i.Default }
func (i AWSInstance) settings() map[string]interface{} {
	return map[string]interface{}{
		"mode":     i.Mode,
		"cli_path": i.CLIPath,
		"profile":  i.Profile,
		"region":   i.Region,
		"endpoint": i.Endpoint,
		"timeout":  i.Timeout,
	}
}

func (i AzureInstance) name() string    { return i.Name }
func (i AzureInstance) isDefault() bool { return i.Default }
func (i AzureInstance) settings() map[string]interface{} {
	return map[string]interface{}{
		"vault_url": i.VaultURL,
		"tenant_id": i.TenantID,
	}
}

func (i HashicorpInstance) name() string    { return i.Name }
func (i HashicorpInstance) isDefault() bool { return i.Default }
func (i HashicorpInstance) settings() map[string]interface{} {
	return map[string]interface{}{
		"address":   i.Address,
		"token":     i.Token,
		"namespace": i.Namespace,
		"mount":     i.Mount,
	}
}

// findInstance returns the instance called name, or the default one when
// name is empty. Without an instance marked default the first one is used.
func findInstance[T instance](providerName string, instances []T, name string) (*T, error) {
	if name != "" {
		for i := range instances {
			if instances[i].name() == name {
				return &instances[i], nil
			}
		}
		return nil, fmt.Errorf("%s instance '%s' not found", providerName, name)
	}

	// Look for instance marked as default
	for i := range instances {
		if instances[i].isDefault() {
			return &instances[i], nil
		}
	}

	// If no default, return first instance
	if len(instances) > 0 {
		return &instances[0], nil
	}

	return nil, fmt.Errorf("no %s instances configured", providerName)
}

// GetAWSInstance returns an AWS instance by name
func (c *Config) GetAWSInstance(name string) (*AWSInstance, error) {
	if c.Providers.AWS == nil {
		return nil, fmt.Errorf("aws provider not configured")
	}
	if name == "" {
		return nil, fmt.Errorf("aws instance name is empty")
	}
	return findInstance(ProviderAWS, c.Providers.AWS.Instances, name)
}

// GetDefaultAWSInstance returns the default AWS instance
func (c *Config) GetDefaultAWSInstance() (*AWSInstance, error) {
	if c.Providers.AWS == nil {
		return nil, fmt.Errorf("aws provider not configured")
	}
	return findInstance(ProviderAWS, c.Providers.AWS.Instances, "")
}

// GetAzureInstance returns an Azure instance by name
func (c *Config) GetAzureInstance(name string) (*AzureInstance, error) {
	if c.Providers.Azure == nil {
		return nil, fmt.Errorf("azure provider not configured")
	}
	if name == "" {
		return nil, fmt.Errorf("azure instance name is empty")
	}
	return findInstance(ProviderAzure, c.Providers.Azure.Instances, name)
}

// GetDefaultAzureInstance returns the default Azure instance
func (c *Config) GetDefaultAzureInstance() (*AzureInstance, error) {
	if c.Providers.Azure == nil {
		return nil, fmt.Errorf("azure provider not configured")
	}
	return findInstance(ProviderAzure, c.Providers.Azure.Instances, "")
}

// GetHashicorpInstance returns a Hashicorp Vault instance by name
func (c *Config) GetHashicorpInstance(name string) (*HashicorpInstance, error) {
	if c.Providers.Hashicorp == nil {
		return nil, fmt.Errorf("hashicorp provider not configured")
	}
	if name == "" {
		return nil, fmt.Errorf("hashicorp instance name is empty")
	}
	return findInstance(ProviderHashicorp, c.Providers.Hashicorp.Instances, name)
}

// GetDefaultHashicorpInstance returns the default Hashicorp Vault instance
func (c *Config) GetDefaultHashicorpInstance() (*HashicorpInstance, error) {
	if c.Providers.Hashicorp == nil {
		return nil, fmt.Errorf("hashicorp provider not configured")
	}
	return findInstance(ProviderHashicorp, c.Providers.Hashicorp.Instances, "")
}

// IsProviderEnabled checks if a provider is enabled
func (c *Config) IsProviderEnabled(providerName string) bool {
	switch providerName {
	case ProviderAWS:
		return c.Providers.AWS != nil && c.Providers.AWS.Enabled
	case ProviderAzure:
		return c.Providers.Azure != nil && c.Providers.Azure.Enabled
	case ProviderHashicorp:
		return c.Providers.Hashicorp != nil && c.Providers.Hashicorp.Enabled
	default:
		return false
	}
}

// GetEnabledProviders returns a list of enabled provider names
func (c *Config) GetEnabledProviders() []string {
	var providers []string
	for _, name := range []string{ProviderAWS, ProviderAzure, ProviderHashicorp} {
		if c.IsProviderEnabled(name) {
			providers = append(providers, name)
		}
	}
	return providers
}

// InstanceNames returns the configured instance names of a provider
func (c *Config) InstanceNames(providerName string) []string {
	var names []string
	switch providerName {
	case ProviderAWS:
		if c.Providers.AWS != nil {
			names = collectNames(c.Providers.AWS.Instances)
		}
	case ProviderAzure:
		if c.Providers.Azure != nil {
			names = collectNames(c.Providers.Azure.Instances)
		}
	case ProviderHashicorp:
		if c.Providers.Hashicorp != nil {
			names = collectNames(c.Providers.Hashicorp.Instances)
		}
	}
	return names
}

func collectNames[T instance](instances []T) []string {
	names := make([]string, 0, len(instances))
	for _, inst := range instances {
		names = append(names, inst.name())
	}
	return names
}

// ProviderConfig builds the settings handed to the provider factory.
// Empty names fall back to the configured defaults. A provider without
// configured instances gets empty settings, leaving it to the environment
// (AWS_PROFILE, AZURE_KEYVAULT_URL, VAULT_ADDR, ...).
func (c *Config) ProviderConfig(providerName, instanceName string) (*provider.Config, error) {
	if providerName == "" {
		providerName = c.Defaults.Provider
		if instanceName == "" {
			instanceName = c.Defaults.Instance
		}
	}
	if providerName == "" {
		return nil, fmt.Errorf("no provider selected (use --provider or set defaults.provider)")
	}

	switch providerName {
	case ProviderAWS, ProviderAzure, ProviderHashicorp:
	default:
		// Unknown to the config file; the registry decides if it exists
		return &provider.Config{Name: providerName, Instance: instanceName, Settings: map[string]interface{}{}}, nil
	}

	if !c.IsProviderEnabled(providerName) {
		return nil, fmt.Errorf("%s provider is disabled in config", providerName)
	}

	var (
		inst instance
		err  error
	)
	switch providerName {
	case ProviderAWS:
		inst, err = pickInstance(providerName, c.Providers.AWS.Instances, instanceName)
	case ProviderAzure:
		inst, err = pickInstance(providerName, c.Providers.Azure.Instances, instanceName)
	case ProviderHashicorp:
		inst, err = pickInstance(providerName, c.Providers.Hashicorp.Instances, instanceName)
	}
	if err != nil {
		return nil, err
	}

	cfg := &provider.Config{Name: providerName, Settings: map[string]interface{}{}}
	if inst != nil {
		cfg.Instance = inst.name()
		cfg.Settings = inst.settings()
	}
	if providerName == ProviderAzure {
		cfg.Settings["enabled_only"] = c.Filters.EnabledOnly
	}
	return cfg, nil
}

// pickInstance is findInstance that tolerates an empty instance list when no
// instance was asked for by name
func pickInstance[T instance](providerName string, instances []T, name string) (instance, error) {
	if name == "" && len(instances) == 0 {
		return nil, nil
	}
	inst, err := findInstance(providerName, instances, name)
	if err != nil {
		return nil, err
	}
	return *inst, nil
}
