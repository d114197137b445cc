package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seren-space/orrery/pkg/epoch"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Interpolate a state at an epoch",
	Long: `Interpolate the position and velocity of a target body at an epoch.

The epoch is given either as ephemeris seconds past J2000 (--et) or as an
RFC3339 UTC timestamp (--utc).

Example:
  orrery -k de440s.bsp query --target 399 --et 757339200.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := kernelSet(cmd)
		if err != nil {
			return err
		}

		target, _ := cmd.Flags().GetInt("target")

		var e epoch.Epoch
		switch {
		case cmd.Flags().Changed("et"):
			et, _ := cmd.Flags().GetFloat64("et")
			e = epoch.FromET(et)
		case cmd.Flags().Changed("utc"):
			utc, _ := cmd.Flags().GetString("utc")
			t, err := time.Parse(time.RFC3339, utc)
			if err != nil {
				return fmt.Errorf("invalid --utc: %w", err)
			}
			e = epoch.FromTime(t)
		default:
			return fmt.Errorf("one of --et or --utc is required")
		}

		st, sum, kernelName, err := set.Evaluate(target, e)
		if err != nil {
			return err
		}

		cmd.Printf("kernel:   %s\n", kernelName)
		cmd.Printf("segment:  %s\n", sum.Name)
		cmd.Printf("epoch:    %s\n", e)
		cmd.Printf("position: [%.9f, %.9f, %.9f] km\n", st.Position[0], st.Position[1], st.Position[2])
		cmd.Printf("velocity: [%.12f, %.12f, %.12f] km/s\n", st.Velocity[0], st.Velocity[1], st.Velocity[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().IntP("target", "t", 0, "NAIF ID of the target body")
	queryCmd.Flags().Float64("et", 0, "Epoch in ephemeris seconds past J2000")
	queryCmd.Flags().String("utc", "", "Epoch as an RFC3339 UTC timestamp")
	_ = queryCmd.MarkFlagRequired("target")
}
