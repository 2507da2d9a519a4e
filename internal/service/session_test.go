package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nadifa/guestbook/internal/render"
	"github.com/nadifa/guestbook/internal/storage"
	"github.com/nadifa/guestbook/internal/ui"
)

// noopScheduler never fires, so notifications stay on the page.
var noopScheduler = ui.SchedulerFunc(func(time.Duration, func()) {})

func openTestSession(t *testing.T, store storage.Storage, visitor string) *Session {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	kv, err := storage.Scope(store, visitor)
	if err != nil {
		t.Fatalf("Scope: %v", err)
	}
	s, err := OpenSession(context.Background(), kv, Deps{
		Renderer:  renderer,
		Scheduler: noopScheduler,
		Notify:    ui.DefaultNotifierConfig(),
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	return s
}

func TestSession_FreshVisitor(t *testing.T) {
	s := openTestSession(t, storage.NewMemoryStorage(), "v1")

	if s.Page.Text(ui.RegionTotal) != "0" {
		t.Errorf("expected count 0, got %q", s.Page.Text(ui.RegionTotal))
	}
	if !strings.Contains(string(s.Page.HTML(ui.RegionMessages)), "No messages yet") {
		t.Errorf("expected empty placeholder, got %q", s.Page.HTML(ui.RegionMessages))
	}
}

func TestSession_SubmitSurvivesReload(t *testing.T) {
	mem := storage.NewMemoryStorage()
	ctx := context.Background()

	s := openTestSession(t, mem, "v1")
	if _, err := s.Greeter.Greet(ctx, &scriptedPort{answer: "Amina"}); err != nil {
		t.Fatalf("Greet: %v", err)
	}
	fill(s.Page, "Al", "al@example.com", "Hello there, friend!")
	if added, err := s.Form.Submit(ctx); err != nil || !added {
		t.Fatalf("Submit: added=%v err=%v", added, err)
	}

	reloaded := openTestSession(t, mem, "v1")
	if err := reloaded.Greeter.Restore(ctx); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := reloaded.Page.Text(ui.RegionWelcome); got != Greeting("Amina") {
		t.Errorf("expected restored greeting, got %q", got)
	}
	if reloaded.Page.Text(ui.RegionTotal) != "1" {
		t.Errorf("expected count 1 after reload, got %q", reloaded.Page.Text(ui.RegionTotal))
	}
	html := string(reloaded.Page.HTML(ui.RegionMessages))
	if !strings.Contains(html, "Hello there, friend!") || !strings.Contains(html, "Oct 18, 2026, 03:04 PM") {
		t.Errorf("expected rendered message after reload, got %s", html)
	}

	other := openTestSession(t, mem, "v2")
	if other.Store.Len() != 0 {
		t.Error("visitors must not see each other's messages")
	}
}

func TestSession_NotificationQueued(t *testing.T) {
	s := openTestSession(t, storage.NewMemoryStorage(), "v1")
	fill(s.Page, "Al", "al@example.com", "Hello there, friend!")
	if _, err := s.Form.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ns := s.Page.Notifications()
	if len(ns) != 1 || ns[0].Text != SentNotice {
		t.Errorf("expected one sent notification, got %+v", ns)
	}
}
