package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seren-space/orrery/pkg/config"
	"github.com/seren-space/orrery/pkg/spk"
)

type contextKey string

const kernelSetKey contextKey = "kernels"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Orrery - SPK ephemeris toolkit",
	Long: `Orrery reads SPK planetary and spacecraft ephemeris kernels and
answers point queries: the interpolated position and velocity of a body
at a given epoch. Hermite data types 12 and 13 are supported.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		paths, _ := cmd.Flags().GetStringSlice("kernel")
		configPath, _ := cmd.Flags().GetString("config")

		if configPath != "" {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			paths = append(cfg.Kernels, paths...)
		}
		if len(paths) == 0 {
			return nil
		}

		set, err := spk.LoadSet(paths...)
		if err != nil {
			return fmt.Errorf("failed to load kernels: %w", err)
		}
		cmd.SetContext(context.WithValue(cmd.Context(), kernelSetKey, set))
		return nil
	},
}

// kernelSet fetches the loaded kernel set from the command context.
func kernelSet(cmd *cobra.Command) (*spk.Set, error) {
	set, ok := cmd.Context().Value(kernelSetKey).(*spk.Set)
	if !ok {
		return nil, fmt.Errorf("no kernels loaded: pass --kernel or --config")
	}
	return set, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceP("kernel", "k", nil, "SPK kernel file to load (repeatable)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file")
}
