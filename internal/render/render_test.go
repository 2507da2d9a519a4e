package render

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/ui"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestMessages_EmptyPlaceholder(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Messages(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(html), "No messages yet. Be the first to send a message!") {
		t.Errorf("expected placeholder, got %s", html)
	}
	if strings.Contains(string(html), "message-card") {
		t.Error("placeholder must not contain message cards")
	}
}

func TestMessages_EscapesVisitorFields(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Messages([]model.Message{{
		ID:        7,
		Name:      `<script>alert("x")</script>`,
		Email:     `a&b@example.com`,
		Message:   `<img src=x onerror=alert(1)>`,
		Timestamp: "Oct 18, 2026, 03:04 PM",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(html)

	if strings.Contains(out, "<script>") || strings.Contains(out, "<img") {
		t.Errorf("visitor markup leaked into output: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected escaped name, got %s", out)
	}
	if !strings.Contains(out, "a&amp;b@example.com") {
		t.Errorf("expected escaped email, got %s", out)
	}
	if !strings.Contains(out, `data-id="7"`) {
		t.Errorf("expected data-id attribute, got %s", out)
	}
}

// TestMessages_TimestampIsTrusted documents that timestamps bypass escaping.
func TestMessages_TimestampIsTrusted(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Messages([]model.Message{{ID: 1, Name: "Al", Email: "al@example.com", Message: "Hello there, friend!", Timestamp: "<em>now</em>"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(html), `<div class="message-time"><em>now</em></div>`) {
		t.Errorf("expected verbatim timestamp, got %s", html)
	}
}

func TestMessages_KeepsOrder(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Messages([]model.Message{
		{ID: 2, Name: "Newest"},
		{ID: 1, Name: "Oldest"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(html)
	if strings.Index(out, "Newest") > strings.Index(out, "Oldest") {
		t.Errorf("expected newest first, got %s", out)
	}
}

func TestPage_RendersState(t *testing.T) {
	r := newRenderer(t)
	p := ui.NewPage()
	p.SetText(ui.RegionWelcome, "Hello, <Al>! Welcome to Nadifa Space.")
	p.SetText(ui.RegionTotal, "3")
	p.SetFieldValue(ui.FieldName, "A")
	p.ShowFieldError(ui.FieldName, "Name must be at least 2 characters")
	p.ShowDialog(ui.Dialog{Kind: ui.DialogConfirm, Message: "Are you sure you want to delete all messages?"})
	msgs, _ := r.Messages(nil)
	p.SetHTML(ui.RegionMessages, msgs)

	var buf bytes.Buffer
	err := r.Page(&buf, PageView{Page: p.Snapshot(), StylesheetPath: "/static/guestbook.css", ScriptPath: "/static/scroll.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Hello, &lt;Al&gt;! Welcome to Nadifa Space.",
		`<strong id="totalMessages">3</strong>`,
		`id="nameError" class="error-message" style="display: block"`,
		`id="emailError" class="error-message" style="display: none"`,
		`value="A" class="input-error"`,
		"Are you sure you want to delete all messages?",
		`name="confirm" value="yes"`,
		"No messages yet.",
		`src="/static/scroll.js"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestPage_NotificationTimings(t *testing.T) {
	r := newRenderer(t)
	p := ui.NewPage()
	ui.NewNotifier(p, ui.HeldScheduler, ui.DefaultNotifierConfig()).Show("Message sent successfully!")

	var buf bytes.Buffer
	err := r.Page(&buf, PageView{
		Page:   p.Snapshot(),
		Notify: ui.NotifierConfig{
			ShowDelay:    20 * time.Millisecond,
			DisplayDelay: 1500 * time.Millisecond,
			FadeDuration: time.Second,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `style="--notify-show: 20ms; --notify-display: 1500ms; --notify-fade: 1000ms"`) {
		t.Errorf("expected configured timings on the notification, got %s", out)
	}
	if strings.Contains(out, "notification success show") {
		t.Error("a held notification must leave the show timing to the stylesheet")
	}
}

func TestStatic_HasStylesheet(t *testing.T) {
	if _, err := fs.Stat(Static(), "guestbook.css"); err != nil {
		t.Errorf("expected embedded guestbook.css: %v", err)
	}
}
