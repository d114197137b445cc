package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the orrery version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("orrery %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
