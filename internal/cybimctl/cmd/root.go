// Package cmd implements the CYBIM signage CLI commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/cmd/campaign"
	"github.com/cybim/cybim-signage/internal/cybimctl/cmd/player"
	settingscmd "github.com/cybim/cybim-signage/internal/cybimctl/cmd/settings"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cybimctl",
	Short: "CYBIM signage control tool",
	Long: `cybimctl is a command line tool for managing a CYBIM signage player:
the campaigns it rotates through, its playback settings, and the player
session itself.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "device control API address")

	rootCmd.AddCommand(campaign.NewCommand())
	rootCmd.AddCommand(player.NewCommand())
	rootCmd.AddCommand(settingscmd.NewCommand())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}
