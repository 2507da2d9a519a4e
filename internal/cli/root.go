// Package cli implements the guestbook command-line interface. Every command
// opens the configured store, loads one visitor's page and runs the same
// operations the web page offers, with dialogs asked on the terminal.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/config"
	"github.com/nadifa/guestbook/internal/logging"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

const defaultConfigDir = ".guestbook"

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	visitor   string
}

// NewRootCmd creates the "guestbook" command with its global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "guestbook",
		Short: "Nadifa Space guestbook on the command line",
		Long:  "Greet visitors and keep their guestbook messages in the configured store.",
		// Execute prints errors.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $GUESTBOOK_CONFIG_DIR or .guestbook)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "data directory for the file and sqlite backends")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: memory, file, sqlite or postgres")
	pf.StringVar(&flags.visitor, "visitor", "", "visitor namespace to work in")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(flags),
		newGreetCmd(flags),
		newPostCmd(flags),
		newListCmd(flags),
		newClearCmd(flags),
		newRenderCmd(flags),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	logging.SetupCLI()

	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitFailure
	}
	return exitSuccess
}

// resolveConfigDir returns the config directory from flag, env, or default.
func (f *rootFlags) resolveConfigDir() string {
	if f.configDir != "" {
		return f.configDir
	}
	if v := os.Getenv("GUESTBOOK_CONFIG_DIR"); v != "" {
		return v
	}
	return defaultConfigDir
}

// loadConfig reads the configuration and applies the global flags on top.
func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.resolveConfigDir())
	if err != nil {
		return nil, err
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.backend != "" {
		cfg.Backend = f.backend
	}
	if f.visitor != "" {
		cfg.Visitor = f.visitor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
