package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/ramtop/internal/tui"
)

func newTuiCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive process table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !supportsInteractiveOutput(cmd) {
				return fmt.Errorf("tui requires an interactive terminal")
			}

			if _, err := app.ensureSession(); err != nil {
				return err
			}
			defer app.closeSession()

			ui := tui.New(app)
			return ui.Run(cmd.Context())
		},
	}

	return cmd
}
