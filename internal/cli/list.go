package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/model"
)

type listOutput struct {
	Messages []model.Message `json:"messages"`
	Total    int             `json:"total"`
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer vs.Close()

			if jsonMode {
				messages := vs.Store.Messages()
				if messages == nil {
					messages = []model.Message{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(listOutput{Messages: messages, Total: len(messages)})
			}

			snap := vs.Page.Snapshot()
			vs.printer.Welcome(snap)
			return vs.printer.Messages(snap)
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "output in JSON format")
	return cmd
}
