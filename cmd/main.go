package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ylchen07/smart-secrets/internal/aws"
	"github.com/ylchen07/smart-secrets/internal/azure"
	"github.com/ylchen07/smart-secrets/internal/config"
	"github.com/ylchen07/smart-secrets/internal/hashicorp"
	"github.com/ylchen07/smart-secrets/internal/logging"
	"github.com/ylchen07/smart-secrets/internal/output"
	"github.com/ylchen07/smart-secrets/internal/provider"
)

var (
	providerName string
	instanceName string
	formatType   string
	configPath   string
	logLevel     string

	revealKeys []string
	revealAll  bool
	fieldKey   string
	copyToClip bool

	// Global config and logger, loaded once per command
	appConfig *config.Config
	logger    = slog.New(slog.DiscardHandler)
)

func init() {
	// Register providers
	provider.Register(aws.ProviderName, aws.NewProvider)
	provider.Register(azure.ProviderName, azure.NewProvider)
	provider.Register(hashicorp.ProviderName, hashicorp.NewProvider)
}

// loadConfig loads the application config and sets up the logger
func loadConfig() error {
	var err error

	if configPath != "" {
		appConfig, err = config.LoadFromFile(configPath)
	} else {
		appConfig, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := appConfig.Log.Level
	if logLevel != "" {
		if err := config.ValidateLogLevel(logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		level = logLevel
	}
	logger = logging.New(level, appConfig.Log.Format, os.Stderr)

	return nil
}

// newProvider builds the provider selected by --provider/--instance or the
// configured defaults
func newProvider() (provider.Provider, error) {
	cfg, err := appConfig.ProviderConfig(providerName, instanceName)
	if err != nil {
		return nil, err
	}

	p, err := provider.GetProvider(cfg.Name, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("provider ready", "provider", cfg.Name, "instance", cfg.Instance)
	return p, nil
}

func getFormatter() (output.Formatter, error) {
	return output.GetFormatter(output.Format(formatType))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smart-secrets",
		Short: "Browse secrets across secret stores with values masked by default",
		Long: `Smart Secrets lists the secrets of AWS Secrets Manager, Azure Key Vault or
Hashicorp Vault, and shows their values field by field, masked until revealed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&providerName, "provider", "p", "", "Provider name (aws, azure, hashicorp); defaults.provider if empty")
	pf.StringVarP(&instanceName, "instance", "i", "", "Instance name (optional, uses default if not specified)")
	pf.StringVar(&configPath, "config", "", "Config file path (optional)")
	pf.StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	// Add commands
	rootCmd.AddCommand(listProvidersCmd())
	rootCmd.AddCommand(listSecretsCmd())
	rootCmd.AddCommand(showSecretCmd())
	rootCmd.AddCommand(getSecretCmd())
	rootCmd.AddCommand(browseCmd())

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
