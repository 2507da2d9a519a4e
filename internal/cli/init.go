package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nadifa/guestbook/internal/config"
	"github.com/nadifa/guestbook/internal/storage"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	Visitor      string `yaml:"visitor,omitempty"`
	Addr         string `yaml:"addr,omitempty"`
	HeaderOffset int    `yaml:"header_offset,omitempty"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and storage",
		Long:  "Write config.yaml into the config directory if it is missing, then open the storage backend once to create it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := flags.resolveConfigDir()
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			path := filepath.Join(configDir, "config.yaml")
			written, err := writeConfigIfMissing(path, *cfg)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			store, err := storage.Open(cmd.Context(), *cfg)
			if err != nil {
				return fmt.Errorf("initialize storage: %w", err)
			}
			defer store.Close()
			if err := store.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("initialize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			fmt.Fprintf(out, "Guestbook initialized (%s backend)\n", cfg.Backend)
			return nil
		},
	}
}

// writeConfigIfMissing writes cfg to path unless the file exists. It reports
// whether it wrote anything.
func writeConfigIfMissing(path string, cfg config.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	data, err := yaml.Marshal(&configFile{
		Backend:      cfg.Backend,
		DataDir:      cfg.DataDir,
		Visitor:      cfg.Visitor,
		Addr:         cfg.Addr,
		HeaderOffset: cfg.HeaderOffset,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
