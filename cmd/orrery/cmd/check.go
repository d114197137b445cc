package cmd

import (
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run an integrity scan over the loaded kernels",
	Long: `Scan every supported segment of the loaded kernels for NaN or
infinite values. A failing scan names the first corrupt section found.

Example:
  orrery -k de440s.bsp check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := kernelSet(cmd)
		if err != nil {
			return err
		}
		if err := set.CheckIntegrity(); err != nil {
			return err
		}
		cmd.Println("integrity check passed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
