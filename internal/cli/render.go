package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/nav"
	"github.com/nadifa/guestbook/internal/render"
)

const (
	stylesheetFile = "guestbook.css"
	scriptFile     = "scroll.js"
)

func newRenderCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the guestbook page as HTML",
		Long:  "Write the visitor's page as a static HTML document. With --out the stylesheet and scroll script are written next to it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer vs.Close()

			var buf bytes.Buffer
			err = vs.renderer.Page(&buf, render.PageView{
				Page:           vs.Page.Snapshot(),
				StylesheetPath: stylesheetFile,
				ScriptPath:     scriptFile,
				Notify:         vs.notify,
			})
			if err != nil {
				return err
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := writeAssets(filepath.Dir(out), vs.cfg.HeaderOffset); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write page: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the page to this file instead of stdout")
	return cmd
}

// writeAssets puts the stylesheet and the scroll script into dir.
func writeAssets(dir string, headerOffset int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	css, err := fs.ReadFile(render.Static(), stylesheetFile)
	if err != nil {
		return fmt.Errorf("read stylesheet: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, stylesheetFile), css, 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	script, err := nav.Script(headerOffset)
	if err != nil {
		return fmt.Errorf("build scroll script: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, scriptFile), script, 0o644); err != nil {
		return fmt.Errorf("write scroll script: %w", err)
	}
	return nil
}
