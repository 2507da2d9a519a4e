package service

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/nadifa/guestbook/internal/model"
)

// ---------------------------------------------------------------------------
// mockGuestbookRepository
// ---------------------------------------------------------------------------

type mockGuestbookRepository struct {
	messages []model.Message
	userName string
	hasName  bool

	saveMessagesCalls int
	loadMessagesFunc  func(ctx context.Context) ([]model.Message, error)
	saveMessagesFunc  func(ctx context.Context, messages []model.Message) error
	saveUserNameFunc  func(ctx context.Context, name string) error
}

func (m *mockGuestbookRepository) LoadMessages(ctx context.Context) ([]model.Message, error) {
	if m.loadMessagesFunc != nil {
		return m.loadMessagesFunc(ctx)
	}
	return append([]model.Message(nil), m.messages...), nil
}

func (m *mockGuestbookRepository) SaveMessages(ctx context.Context, messages []model.Message) error {
	m.saveMessagesCalls++
	if m.saveMessagesFunc != nil {
		return m.saveMessagesFunc(ctx, messages)
	}
	m.messages = append([]model.Message(nil), messages...)
	return nil
}

func (m *mockGuestbookRepository) LoadUserName(_ context.Context) (string, bool, error) {
	return m.userName, m.hasName, nil
}

func (m *mockGuestbookRepository) SaveUserName(ctx context.Context, name string) error {
	if m.saveUserNameFunc != nil {
		return m.saveUserNameFunc(ctx, name)
	}
	m.userName, m.hasName = name, true
	return nil
}

// ---------------------------------------------------------------------------
// scriptedPort answers dialogs from fixed values and records what was asked.
// ---------------------------------------------------------------------------

type scriptedPort struct {
	answer   string
	declined bool
	confirm  bool

	prompts  []string
	confirms []string
	alerts   []string
}

func (p *scriptedPort) Prompt(message string) (string, bool) {
	p.prompts = append(p.prompts, message)
	if p.declined {
		return "", false
	}
	return p.answer, true
}

func (p *scriptedPort) Confirm(message string) bool {
	p.confirms = append(p.confirms, message)
	return p.confirm
}

func (p *scriptedPort) Alert(message string) {
	p.alerts = append(p.alerts, message)
}

// ---------------------------------------------------------------------------
// recordingNotifier / stubRenderer
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	shown []string
}

func (n *recordingNotifier) Show(text string) { n.shown = append(n.shown, text) }

// stubRenderer renders one "[id:name]" token per message.
type stubRenderer struct {
	err error
}

func (r stubRenderer) Messages(messages []model.Message) (template.HTML, error) {
	if r.err != nil {
		return "", r.err
	}
	var b strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&b, "[%d:%s]", m.ID, m.Name)
	}
	return template.HTML(b.String()), nil
}
