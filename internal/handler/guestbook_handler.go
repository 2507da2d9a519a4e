package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/render"
	"github.com/nadifa/guestbook/internal/service"
	"github.com/nadifa/guestbook/internal/storage"
	"github.com/nadifa/guestbook/internal/ui"
	"github.com/nadifa/guestbook/pkg/visitor"
)

// GuestbookHandler serves the guestbook page and its form posts. Each request
// opens the visitor's session from storage, applies one action and renders
// the resulting page.
type GuestbookHandler struct {
	store    storage.Storage
	renderer *render.Renderer
	deps     service.Deps
	locks    *visitorLocks
}

// NewGuestbookHandler creates a GuestbookHandler. deps.Renderer defaults to
// renderer.
func NewGuestbookHandler(store storage.Storage, renderer *render.Renderer, deps service.Deps) *GuestbookHandler {
	if deps.Renderer == nil {
		deps.Renderer = renderer
	}
	return &GuestbookHandler{
		store:    store,
		renderer: renderer,
		deps:     deps,
		locks:    newVisitorLocks(),
	}
}

type sessionAction func(ctx context.Context, s *service.Session) error

// serve runs action on the visitor's session and writes the page. The page is
// rendered to a buffer first so a failure can still produce a clean 500.
func (h *GuestbookHandler) serve(w http.ResponseWriter, r *http.Request, action sessionAction) {
	s, unlock, ok := h.open(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := action(r.Context(), s); err != nil {
		slog.Error("guestbook action failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	err := h.renderer.Page(&buf, render.PageView{
		Page:           s.Page.Snapshot(),
		StylesheetPath: StylesheetPath,
		ScriptPath:     ScriptPath,
		Notify:         h.deps.Notify,
	})
	if err != nil {
		slog.Error("render page failed", "error", err)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// open locks the visitor and loads their session. On failure it has already
// written the response.
func (h *GuestbookHandler) open(w http.ResponseWriter, r *http.Request) (*service.Session, func(), bool) {
	id, ok := visitor.FromContext(r.Context())
	if !ok {
		slog.Error("request without visitor", "path", r.URL.Path)
		http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return nil, nil, false
	}

	unlock := h.locks.Lock(id)
	kv, err := storage.Scope(h.store, id)
	if err == nil {
		var s *service.Session
		s, err = service.OpenSession(r.Context(), kv, h.deps)
		if err == nil {
			return s, unlock, true
		}
	}
	unlock()

	slog.Error("open session failed", "error", err, "visitor", id)
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
	return nil, nil, false
}

// askName shows the stored greeting, if any, with the name prompt on top.
func askName(ctx context.Context, s *service.Session) error {
	if err := s.Greeter.Restore(ctx); err != nil {
		return err
	}
	s.Page.ShowDialog(ui.Dialog{Kind: ui.DialogPrompt, Message: service.PromptMessage})
	return nil
}

// Index handles GET /: the page load with the name prompt.
func (h *GuestbookHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, askName)
}

// Greet handles POST /greet, the answer to the name prompt.
func (h *GuestbookHandler) Greet(w http.ResponseWriter, r *http.Request) {
	var answers ui.Answers
	switch r.PostFormValue("action") {
	case "ok":
		name := r.PostFormValue("name")
		answers.Prompt = &name
	case "cancel":
		answers.PromptDeclined = true
	default:
		h.serve(w, r, askName)
		return
	}

	h.serve(w, r, func(ctx context.Context, s *service.Session) error {
		_, err := s.Greeter.Greet(ctx, ui.NewRequestPort(s.Page, answers))
		return err
	})
}

// SubmitMessage handles POST /messages.
func (h *GuestbookHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	sub := model.Submission{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
	h.serve(w, r, func(ctx context.Context, s *service.Session) error {
		if err := s.Greeter.Restore(ctx); err != nil {
			return err
		}
		s.Page.SetFieldValue(ui.FieldName, sub.Name)
		s.Page.SetFieldValue(ui.FieldEmail, sub.Email)
		s.Page.SetFieldValue(ui.FieldMessage, sub.Message)
		_, err := s.Form.Submit(ctx)
		return err
	})
}

// ClearForm handles POST /form/clear.
func (h *GuestbookHandler) ClearForm(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, s *service.Session) error {
		if err := s.Greeter.Restore(ctx); err != nil {
			return err
		}
		s.Form.Clear()
		return nil
	})
}

// ClearMessages handles POST /messages/clear. Without a confirm answer the
// page comes back with the confirmation dialog open.
func (h *GuestbookHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	var answers ui.Answers
	switch r.PostFormValue("confirm") {
	case "yes":
		yes := true
		answers.Confirm = &yes
	case "no":
		no := false
		answers.Confirm = &no
	}

	h.serve(w, r, func(ctx context.Context, s *service.Session) error {
		if err := s.Greeter.Restore(ctx); err != nil {
			return err
		}
		_, err := s.Store.ClearAll(ctx, ui.NewRequestPort(s.Page, answers))
		return err
	})
}

type messagesResponse struct {
	Messages []model.Message `json:"messages"`
	Total    int             `json:"total"`
}

// ListMessages handles GET /api/messages.
func (h *GuestbookHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s, unlock, ok := h.open(w, r)
	if !ok {
		return
	}
	messages := s.Store.Messages()
	unlock()

	if messages == nil {
		messages = []model.Message{}
	}
	_ = json.NewEncoder(w).Encode(messagesResponse{Messages: messages, Total: len(messages)})
}
