// Package util provides shared utilities for the CLI
package util

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/client"
	"github.com/cybim/cybim-signage/internal/cybimctl/config"
)

// GetClientFromCommand creates an API client from the command's flags,
// the environment, and the CLI config, in that order of preference
func GetClientFromCommand(cmd *cobra.Command) (*client.Client, error) {
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		server = os.Getenv("CYBIM_API_URL")
	}
	if server == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		ctx, err := cfg.GetCurrentContext()
		if err != nil {
			return nil, fmt.Errorf("no device configured - set CYBIM_API_URL, pass --server, or run 'cybimctl config set-context'")
		}
		server = ctx.Server
	}

	c, err := client.NewClient(server)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return c, nil
}
