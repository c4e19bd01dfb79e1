package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newKillCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kill <pid>...",
		Short: "Terminate processes and report the memory reclaimed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args)
			if err != nil {
				return err
			}

			report, err := app.runBatch(pids)
			if err != nil {
				return err
			}
			defer app.closeSession()

			fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		},
	}
	return cmd
}

func parsePIDs(args []string) ([]int32, error) {
	pids := make([]int32, 0, len(args))
	for _, arg := range args {
		pid, err := strconv.ParseInt(arg, 10, 32)
		if err != nil || pid <= 0 {
			return nil, fmt.Errorf("invalid pid %q", arg)
		}
		pids = append(pids, int32(pid))
	}
	return pids, nil
}
