package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nadifa/guestbook/internal/repository"
	"github.com/nadifa/guestbook/internal/ui"
)

const (
	// PromptMessage is the question asked when the page loads.
	PromptMessage = "Welcome to Nadifa Space! What is your name?"
	// DefaultName replaces a declined or blank answer.
	DefaultName = "Guest"
)

// Greeting returns the welcome line for name.
func Greeting(name string) string {
	return fmt.Sprintf("Hello, %s! Welcome to Nadifa Space.", name)
}

// Greeter asks for the visitor's name and writes the welcome line.
type Greeter struct {
	repo    repository.GuestbookRepository
	surface ui.Surface
}

// NewGreeter creates a Greeter.
func NewGreeter(repo repository.GuestbookRepository, surface ui.Surface) *Greeter {
	return &Greeter{repo: repo, surface: surface}
}

// Greet prompts once for a name, falls back to DefaultName when the prompt is
// declined or blank, shows the greeting and stores the name. A non-blank
// answer is kept exactly as typed.
func (g *Greeter) Greet(ctx context.Context, port ui.Port) (string, error) {
	name, ok := port.Prompt(PromptMessage)
	if !ok || strings.TrimSpace(name) == "" {
		name = DefaultName
	}

	g.surface.SetText(ui.RegionWelcome, Greeting(name))

	if err := g.repo.SaveUserName(ctx, name); err != nil {
		return name, err
	}
	return name, nil
}

// Restore writes the greeting for the stored name, if there is one.
func (g *Greeter) Restore(ctx context.Context) error {
	name, ok, err := g.repo.LoadUserName(ctx)
	if err != nil {
		return err
	}
	if ok {
		g.surface.SetText(ui.RegionWelcome, Greeting(name))
	}
	return nil
}
