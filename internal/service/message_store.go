package service

import (
	"context"
	"html/template"
	"strconv"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/repository"
	"github.com/nadifa/guestbook/internal/ui"
)

// Dialog and notification texts of the message store.
const (
	ConfirmClearMessage   = "Are you sure you want to delete all messages?"
	NothingToClearMessage = "No messages to clear!"
	ClearedNotice         = "All messages cleared!"
)

// Notifier shows a transient notification.
type Notifier interface {
	Show(text string)
}

// MessagesRenderer renders the messages region.
type MessagesRenderer interface {
	Messages(messages []model.Message) (template.HTML, error)
}

// MessageStore owns a visitor's collection (newest first) and keeps the
// store, the messages region and the count region in step with it.
type MessageStore struct {
	repo     repository.GuestbookRepository
	surface  ui.Surface
	renderer MessagesRenderer
	notifier Notifier

	messages []model.Message
}

// NewMessageStore loads the collection, then renders it and its count.
func NewMessageStore(ctx context.Context, repo repository.GuestbookRepository, surface ui.Surface, renderer MessagesRenderer, notifier Notifier) (*MessageStore, error) {
	messages, err := repo.LoadMessages(ctx)
	if err != nil {
		return nil, err
	}
	s := &MessageStore{
		repo:     repo,
		surface:  surface,
		renderer: renderer,
		notifier: notifier,
		messages: messages,
	}
	if err := s.Render(); err != nil {
		return nil, err
	}
	s.UpdateCount()
	return s, nil
}

// Add puts m in front of the collection.
func (s *MessageStore) Add(m model.Message) {
	s.messages = append([]model.Message{m}, s.messages...)
}

// Persist overwrites the stored collection with the current one.
func (s *MessageStore) Persist(ctx context.Context) error {
	return s.repo.SaveMessages(ctx, s.messages)
}

// Render rebuilds the messages region from the collection.
func (s *MessageStore) Render() error {
	html, err := s.renderer.Messages(s.messages)
	if err != nil {
		return err
	}
	s.surface.SetHTML(ui.RegionMessages, html)
	return nil
}

// UpdateCount writes the collection length into the count region.
func (s *MessageStore) UpdateCount() {
	s.surface.SetText(ui.RegionTotal, strconv.Itoa(len(s.messages)))
}

// Len returns the number of messages.
func (s *MessageStore) Len() int { return len(s.messages) }

// Messages returns a copy of the collection, newest first.
func (s *MessageStore) Messages() []model.Message {
	return append([]model.Message(nil), s.messages...)
}

// ClearAll empties the collection after the visitor confirms. An empty
// collection only raises an alert. It reports whether anything was cleared.
func (s *MessageStore) ClearAll(ctx context.Context, port ui.Port) (bool, error) {
	if len(s.messages) == 0 {
		port.Alert(NothingToClearMessage)
		return false, nil
	}
	if !port.Confirm(ConfirmClearMessage) {
		return false, nil
	}

	s.messages = nil
	if err := s.Persist(ctx); err != nil {
		return true, err
	}
	if err := s.Render(); err != nil {
		return true, err
	}
	s.UpdateCount()
	s.notifier.Show(ClearedNotice)
	return true, nil
}
