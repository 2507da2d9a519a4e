package terminal

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jaytaylor/html2text"

	"github.com/nadifa/guestbook/internal/ui"
)

const (
	colorBrand   lipgloss.Color = "#f5c2e7"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorInfo    lipgloss.Color = "#94e2d5"
)

// Styles are the lipgloss styles used for terminal output.
type Styles struct {
	Welcome      lipgloss.Style
	Heading      lipgloss.Style
	FieldError   lipgloss.Style
	Notification lipgloss.Style
	Dialog       lipgloss.Style
	Muted        lipgloss.Style
}

// NewStyles builds styles for w. Colors are dropped when w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Welcome:      r.NewStyle().Bold(true).Foreground(colorBrand),
		Heading:      r.NewStyle().Bold(true).Underline(true),
		FieldError:   r.NewStyle().Foreground(colorError),
		Notification: r.NewStyle().Foreground(colorSuccess),
		Dialog:       r.NewStyle().Bold(true).Foreground(colorInfo),
		Muted:        r.NewStyle().Foreground(colorMuted),
	}
}

// Printer writes a page snapshot as text.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: NewStyles(out)}
}

// MessagesText converts the rendered messages region to plain text.
func MessagesText(html template.HTML) (string, error) {
	text, err := html2text.FromString(string(html))
	if err != nil {
		return "", fmt.Errorf("convert messages: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Messages prints the count line and the messages region.
func (p *Printer) Messages(s ui.Snapshot) error {
	text, err := MessagesText(s.Messages)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.out, p.styles.Heading.Render("Total messages: "+s.Total))
	fmt.Fprintln(p.out, text)
	return nil
}

// FieldErrors prints the visible field errors. It reports whether there
// were any.
func (p *Printer) FieldErrors(s ui.Snapshot) bool {
	fields := []struct {
		field ui.Field
		state ui.FieldState
	}{
		{ui.FieldName, s.Name},
		{ui.FieldEmail, s.Email},
		{ui.FieldMessage, s.Message},
	}
	found := false
	for _, f := range fields {
		if !f.state.ErrorVisible {
			continue
		}
		found = true
		fmt.Fprintf(p.out, "%s %s\n", p.styles.Muted.Render(string(f.field)+":"), p.styles.FieldError.Render(f.state.Error))
	}
	return found
}

// Notifications prints the notifications on the page.
func (p *Printer) Notifications(s ui.Snapshot) {
	for _, n := range s.Notifications {
		fmt.Fprintln(p.out, p.styles.Notification.Render(n.Text))
	}
}

// Welcome prints the greeting, if any.
func (p *Printer) Welcome(s ui.Snapshot) {
	if s.Welcome != "" {
		fmt.Fprintln(p.out, p.styles.Welcome.Render(s.Welcome))
	}
}

// Page prints everything a visitor would see.
func (p *Printer) Page(s ui.Snapshot) error {
	p.Welcome(s)
	p.FieldErrors(s)
	if err := p.Messages(s); err != nil {
		return err
	}
	p.Notifications(s)
	return nil
}
