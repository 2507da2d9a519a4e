package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/ui"
)

var errNotSent = errors.New("message not sent")

func newPostCmd(flags *rootFlags) *cobra.Command {
	var name, email, message string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a guestbook message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer vs.Close()

			vs.Page.SetFieldValue(ui.FieldName, name)
			vs.Page.SetFieldValue(ui.FieldEmail, email)
			vs.Page.SetFieldValue(ui.FieldMessage, message)

			added, err := vs.Form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			snap := vs.Page.Snapshot()
			if !added {
				vs.printer.FieldErrors(snap)
				return errNotSent
			}
			vs.printer.Notifications(snap)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "your email address")
	cmd.Flags().StringVar(&message, "message", "", "the message")
	return cmd
}
