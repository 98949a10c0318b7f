// The cybimctl command provides a command-line interface for managing
// CYBIM signage players: their campaigns, settings, and playback.
package main

import "github.com/cybim/cybim-signage/internal/cybimctl/cmd"

func main() {
	cmd.Execute()
}
