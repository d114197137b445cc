package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the segments of the loaded kernels",
	Long: `List every segment of the loaded kernels: target, center, frame,
data type and coverage interval.

Example:
  orrery -k de440s.bsp inspect`,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := kernelSet(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KERNEL\tSEGMENT\tTARGET\tCENTER\tFRAME\tTYPE\tSTART\tEND")
		for _, ent := range set.Entries() {
			for _, s := range ent.Kernel.Segments() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					ent.Name, s.Name, s.Target, s.Center, s.Frame, s.DataType, s.Start(), s.End())
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
