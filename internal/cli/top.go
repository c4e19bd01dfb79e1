package cli

import (
	"fmt"
	"text/tabwriter"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func newTopCmd(app *appContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the processes with the largest resident sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := limit
			if n <= 0 {
				n = app.cfg.TopN
			}
			samples, err := app.inspector.TopByResident(n)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PID\tPROCESS\tRAM\t%MEM")
			for _, s := range samples {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\n",
					s.PID, s.Name, units.BytesSize(float64(s.ResidentBytes)), s.MemoryPercent)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of processes to show (defaults to configured topN)")

	return cmd
}
