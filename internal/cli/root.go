// Package cli wires the tunerelay commands.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/tunerelay/tunerelay/internal/cli.version=1.2.3"
	version = "0.3.0"
	logo    = "\n" +
		"  _                          _\n" +
		" | |_ _  _ _ _  ___ _ _ ___ | |__ _ _  _\n" +
		" |  _| || | ' \\/ -_) '_/ -_)| / _` | || |\n" +
		"  \\__|\\_,_|_||_\\___|_| \\___||_\\__,_|\\_, |\n" +
		"                                    |__/\n"
)

var rootCmd = &cobra.Command{
	Use:   "tunerelay",
	Short: "tunerelay - Slack music-link relay",
	Long:  color.CyanString(logo) + "\nA Slack webhook relay that resolves shared music links across streaming platforms.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
