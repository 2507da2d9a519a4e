package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nadifa/guestbook/internal/repository"
	"github.com/nadifa/guestbook/internal/ui"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Renderer  MessagesRenderer
	Scheduler ui.Scheduler
	Notify    ui.NotifierConfig
	// Now stamps new messages. Nil means time.Now.
	Now func() time.Time
}

// Session is one visitor's page with its components wired to it.
type Session struct {
	Page    *ui.Page
	Repo    repository.GuestbookRepository
	Greeter *Greeter
	Store   *MessageStore
	Form    *Form
}

// OpenSession builds a fresh page for the visitor whose entries live in kv
// and loads the stored collection into it. The greeting is left to the
// caller, which decides between Greet and Restore.
func OpenSession(ctx context.Context, kv repository.KeyValue, deps Deps) (*Session, error) {
	sched := deps.Scheduler
	if sched == nil {
		sched = ui.TimerScheduler
	}

	page := ui.NewPage()
	notifier := ui.NewNotifier(page, sched, deps.Notify)
	repo := repository.NewGuestbookRepository(kv)

	store, err := NewMessageStore(ctx, repo, page, deps.Renderer, notifier)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return &Session{
		Page:    page,
		Repo:    repo,
		Greeter: NewGreeter(repo, page),
		Store:   store,
		Form:    NewForm(store, page, notifier, deps.Now),
	}, nil
}
