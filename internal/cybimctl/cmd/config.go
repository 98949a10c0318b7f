package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/config"
)

// newConfigCmd creates the config command that manages CLI contexts.
// Each context names a signage device; switching contexts switches
// which device the other commands talk to.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `The config command provides subcommands for managing cybimctl's
configuration. Each context represents a signage device, letting you
switch between the screens you manage.`,
	}

	cmd.AddCommand(
		newConfigGetContextCmd(),
		newConfigSetContextCmd(),
		newConfigDeleteContextCmd(),
		newConfigUseContextCmd(),
	)

	return cmd
}

func newConfigGetContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-context [name]",
		Short: "Display one or many contexts",
		Example: `  # List all contexts
  cybimctl config get-context

  # Show details for a specific context
  cybimctl config get-context lobby`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Printf("CURRENT   NAME           SERVER\n")
				for name, ctx := range cfg.Contexts {
					current := " "
					if name == cfg.CurrentContext {
						current = "*"
					}
					fmt.Printf("%-8s  %-13s  %s\n", current, name, ctx.Server)
				}
				return nil
			}

			name := args[0]
			ctx, ok := cfg.Contexts[name]
			if !ok {
				return fmt.Errorf("context %q not found", name)
			}

			fmt.Printf("Name: %s\n", name)
			fmt.Printf("Server: %s\n", ctx.Server)
			return nil
		},
	}
}

func newConfigSetContextCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "set-context NAME",
		Short: "Create or update a context",
		Example: `  # Register the lobby screen
  cybimctl config set-context lobby --server=http://lobby-screen:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			cfg.AddContext(name, &config.Context{Server: server})

			// the first context becomes current automatically
			if cfg.CurrentContext == "" {
				cfg.CurrentContext = name
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}

			fmt.Printf("Context %q updated\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Device control API URL (required)")
	cmd.MarkFlagRequired("server")

	return cmd
}

func newConfigDeleteContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-context NAME",
		Short: "Delete a context",
		Example: `  # Forget the old cafeteria screen
  cybimctl config delete-context cafeteria`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := cfg.RemoveContext(name); err != nil {
				return fmt.Errorf("error removing context: %w", err)
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}

			fmt.Printf("Context %q deleted\n", name)
			return nil
		},
	}
}

func newConfigUseContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-context NAME",
		Short: "Switch to a different context",
		Example: `  # Talk to the lobby screen from now on
  cybimctl config use-context lobby`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := cfg.SetCurrentContext(name); err != nil {
				return fmt.Errorf("error setting current context: %w", err)
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}

			fmt.Printf("Switched to context %q\n", name)
			return nil
		},
	}
}
