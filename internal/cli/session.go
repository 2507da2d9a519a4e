package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nadifa/guestbook/internal/config"
	"github.com/nadifa/guestbook/internal/render"
	"github.com/nadifa/guestbook/internal/service"
	"github.com/nadifa/guestbook/internal/storage"
	"github.com/nadifa/guestbook/internal/terminal"
	"github.com/nadifa/guestbook/internal/ui"
)

// visitorSession is an open store plus one visitor's session.
type visitorSession struct {
	*service.Session
	cfg      *config.Config
	notify   ui.NotifierConfig
	store    storage.Storage
	renderer *render.Renderer
	printer  *terminal.Printer
	port     *terminal.Port
}

func (v *visitorSession) Close() error {
	return v.store.Close()
}

// openSession opens the configured store and the visitor's session. The
// stored greeting is restored.
func openSession(cmd *cobra.Command, flags *rootFlags) (*visitorSession, error) {
	ctx := cmd.Context()

	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New()
	if err != nil {
		store.Close()
		return nil, err
	}
	kv, err := storage.Scope(store, cfg.Visitor)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("visitor %q: %w", cfg.Visitor, err)
	}

	notify := ui.DefaultNotifierConfig()
	notify.DisplayDelay = cfg.NotifyDelay
	notify.FadeDuration = cfg.FadeDuration

	s, err := service.OpenSession(ctx, kv, service.Deps{
		Renderer:  renderer,
		Scheduler: ui.HeldScheduler,
		Notify:    notify,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := s.Greeter.Restore(ctx); err != nil {
		store.Close()
		return nil, err
	}

	out := cmd.OutOrStdout()
	return &visitorSession{
		Session:  s,
		cfg:      cfg,
		notify:   notify,
		store:    store,
		renderer: renderer,
		printer:  terminal.NewPrinter(out),
		port:     terminal.NewPort(cmd.InOrStdin(), out),
	}, nil
}
