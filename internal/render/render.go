// Package render turns guestbook state into HTML.
//
// Escaping policy: every visitor-supplied field (name, email, message body)
// goes through html/template's contextual escaping. Timestamps are produced
// by the server and are emitted verbatim through trustedTimestamp; nothing
// else is marked trusted.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/ui"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded stylesheet directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("guestbook").Funcs(template.FuncMap{
		"fieldError": func(id string, st ui.FieldState) fieldErrorView {
			return fieldErrorView{ID: id, State: st}
		},
		"ms": func(d time.Duration) int64 { return d.Milliseconds() },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type fieldErrorView struct {
	ID    string
	State ui.FieldState
}

type messageView struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	Timestamp template.HTML
}

// trustedTimestamp marks a server-generated timestamp as safe markup.
func trustedTimestamp(ts string) template.HTML {
	return template.HTML(ts)
}

// Messages renders the messages region: one card per message, newest first,
// or the empty-state placeholder.
func (r *Renderer) Messages(messages []model.Message) (template.HTML, error) {
	views := make([]messageView, len(messages))
	for i, m := range messages {
		views[i] = messageView{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Message:   m.Message,
			Timestamp: trustedTimestamp(m.Timestamp),
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "messages", views); err != nil {
		return "", fmt.Errorf("render messages: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PageView is everything the full page template needs.
type PageView struct {
	Page           ui.Snapshot
	StylesheetPath string
	ScriptPath     string
	// Notify drives the notification animation. Zero means the defaults.
	Notify ui.NotifierConfig
}

// Page writes the full document.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	if v.Notify == (ui.NotifierConfig{}) {
		v.Notify = ui.DefaultNotifierConfig()
	}
	if err := r.tmpl.ExecuteTemplate(w, "page", v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
