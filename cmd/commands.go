package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/ylchen07/smart-secrets/internal/clipboard"
	"github.com/ylchen07/smart-secrets/internal/provider"
	"github.com/ylchen07/smart-secrets/internal/session"
	"github.com/ylchen07/smart-secrets/internal/tui"
	"github.com/ylchen07/smart-secrets/pkg/models"
)

// listProvidersCmd returns the list-providers command
func listProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-providers",
		Short: "List available secret providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := provider.ListProviders()
			providers := make([]models.ProviderInfo, 0, len(names))
			for _, name := range names {
				providers = append(providers, models.ProviderInfo{
					Name:      name,
					Enabled:   appConfig.IsProviderEnabled(name),
					Instances: appConfig.InstanceNames(name),
				})
			}

			formatter, err := getFormatter()
			if err != nil {
				return err
			}

			result, err := formatter.FormatProviders(providers)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatType, "format", "f", "plain", "Output format (plain, json, yaml)")
	return cmd
}

// listSecretsCmd returns the list-secrets command
func listSecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-secrets",
		Short: "List all secrets of a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := getFormatter()
			if err != nil {
				return err
			}

			p, err := newProvider()
			if err != nil {
				return err
			}

			catalog := session.NewCatalog(p, session.WithLogger(logger))
			secrets, err := catalog.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			result, err := formatter.FormatSecrets(secrets)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatType, "format", "f", "plain", "Output format (plain, json, yaml)")
	return cmd
}

// showSecretCmd returns the show-secret command
func showSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-secret ID",
		Short: "Show a secret field by field, masked unless revealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := getFormatter()
			if err != nil {
				return err
			}

			p, err := newProvider()
			if err != nil {
				return err
			}

			registry := session.NewRegistry(p, session.WithLogger(logger))
			s, err := registry.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			keys := revealKeys
			if revealAll {
				keys = s.Keys()
			}
			for _, key := range keys {
				// Toggle flips, so skip keys already revealed by a repeated flag
				shown, err := s.Revealed(key)
				if err != nil {
					return err
				}
				if shown {
					continue
				}
				if err := s.Toggle(key); err != nil {
					return err
				}
			}

			result, err := formatter.FormatRows(s.RenderRows())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatType, "format", "f", "plain", "Output format (plain, json, yaml)")
	cmd.Flags().StringArrayVarP(&revealKeys, "reveal", "r", nil, "Reveal the value of a field (repeatable)")
	cmd.Flags().BoolVar(&revealAll, "reveal-all", false, "Reveal every field")
	return cmd
}

// getSecretCmd returns the get-secret command
func getSecretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-secret ID",
		Short: "Get the raw value of a secret or one of its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			p, err := newProvider()
			if err != nil {
				return err
			}

			registry := session.NewRegistry(p, session.WithLogger(logger))
			s, err := registry.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			key := fieldKey
			if key == "" {
				if s.Value().Kind() == session.KindStructured {
					return fmt.Errorf("secret %s has fields %s; pick one with --key", id, strings.Join(s.Keys(), ", "))
				}
				key = id
			}

			value, err := s.RawValue(key)
			if err != nil {
				return err
			}

			// Copy to clipboard if requested
			if copyToClip {
				if err := clipboard.Copy(cmd.Context(), value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Secret '%s' copied to clipboard!\n", key)
				return nil
			}

			// Output the secret value
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fieldKey, "key", "k", "", "Field to print for structured secrets")
	cmd.Flags().BoolVarP(&copyToClip, "copy", "c", false, "Copy secret to clipboard")
	return cmd
}

// browseCmd returns the browse command
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse secrets interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvider()
			if err != nil {
				return err
			}

			title := p.Name()
			if instanceName != "" {
				title += " / " + instanceName
			}

			model := tui.NewBrowserModel(
				cmd.Context(),
				title,
				session.NewCatalog(p, session.WithLogger(logger)),
				session.NewRegistry(p, session.WithLogger(logger)),
				nil,
			)

			prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}
