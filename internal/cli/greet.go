package cli

import (
	"github.com/spf13/cobra"
)

func newGreetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "greet",
		Short: "Ask for your name and greet you",
		Long:  "Prompt for a name on the terminal, store it and print the welcome line. End of input keeps the default name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer vs.Close()

			if _, err := vs.Greeter.Greet(cmd.Context(), vs.port); err != nil {
				return err
			}
			vs.printer.Welcome(vs.Page.Snapshot())
			return nil
		},
	}
}
