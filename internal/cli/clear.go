package cli

import (
	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/terminal"
	"github.com/nadifa/guestbook/internal/ui"
)

func newClearCmd(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all messages",
		Long:  "Delete every stored message after confirmation. With --yes the confirmation is skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer vs.Close()

			var port ui.Port = vs.port
			if yes {
				port = terminal.AssumeYes(port)
			}
			if _, err := vs.Store.ClearAll(cmd.Context(), port); err != nil {
				return err
			}
			vs.printer.Notifications(vs.Page.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
