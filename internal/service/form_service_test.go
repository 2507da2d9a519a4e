package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/ui"
)

var fixedNow = time.Date(2026, time.October, 18, 15, 4, 0, 0, time.UTC)

func TestValidate_Valid(t *testing.T) {
	clean, errs := Validate(model.Submission{
		Name:    "  Al ",
		Email:   " al@example.com",
		Message: "Hello there, friend!  ",
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	want := model.Submission{Name: "Al", Email: "al@example.com", Message: "Hello there, friend!"}
	if clean != want {
		t.Errorf("expected %+v, got %+v", want, clean)
	}
}

func TestValidate_AllFieldsReported(t *testing.T) {
	_, errs := Validate(model.Submission{Name: "A", Email: "bad", Message: "short"})

	want := []FieldError{
		{ui.FieldName, ErrNameTooShort},
		{ui.FieldEmail, ErrEmailInvalid},
		{ui.FieldMessage, ErrMessageTooShort},
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %+v", len(want), errs)
	}
	for i := range want {
		if errs[i] != want[i] {
			t.Errorf("error %d: expected %+v, got %+v", i, want[i], errs[i])
		}
	}
}

func TestValidate_Required(t *testing.T) {
	_, errs := Validate(model.Submission{Name: "   ", Email: "", Message: "\n"})

	texts := make([]string, len(errs))
	for i, e := range errs {
		texts[i] = e.Text
	}
	got := strings.Join(texts, "|")
	if got != ErrNameRequired+"|"+ErrEmailRequired+"|"+ErrMessageRequired {
		t.Errorf("unexpected errors %q", got)
	}
}

func TestValidate_Email(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last@x.org",
		"ünïcode@例え.jp",
		"\ufeffa@b.co\u00a0",
	}
	invalid := []string{
		"a@b",
		"a b@c.de",
		"@b.co",
		"a@@b.co",
		"a@b.",
		"al\u00a0ice@example.com",
		"al\u3000ice@example.com",
		"a@exa\u2028mple.com",
		"a@b.c\u2029o",
		"a\vb@c.de",
		"a\ufeffb@c.de",
	}

	for _, email := range valid {
		_, errs := Validate(model.Submission{Name: "Al", Email: email, Message: "long enough text"})
		if len(errs) != 0 {
			t.Errorf("%q: expected valid, got %+v", email, errs)
		}
	}
	for _, email := range invalid {
		_, errs := Validate(model.Submission{Name: "Al", Email: email, Message: "long enough text"})
		if len(errs) != 1 || errs[0].Text != ErrEmailInvalid {
			t.Errorf("%q: expected invalid email error, got %+v", email, errs)
		}
	}
}

func TestValidate_TrimsUnicodeSpace(t *testing.T) {
	clean, errs := Validate(model.Submission{
		Name:    "\u3000Al\ufeff",
		Email:   "\u00a0al@example.com",
		Message: "\ufeffHello there, friend!\u2028",
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	want := model.Submission{Name: "Al", Email: "al@example.com", Message: "Hello there, friend!"}
	if clean != want {
		t.Errorf("expected %+v, got %+v", want, clean)
	}
}

func TestValidate_LengthsCountCharacters(t *testing.T) {
	// Two runes, four bytes.
	_, errs := Validate(model.Submission{Name: "Ñö", Email: "a@b.co", Message: "ééééééééé"})
	if len(errs) != 1 || errs[0].Field != ui.FieldMessage {
		t.Errorf("expected only the 9-character message to fail, got %+v", errs)
	}

	_, errs = Validate(model.Submission{Name: "Ñö", Email: "a@b.co", Message: "éééééééééé"})
	if len(errs) != 0 {
		t.Errorf("expected 10-character message to pass, got %+v", errs)
	}
}

func newTestForm(t *testing.T, repo *mockGuestbookRepository) (*Form, *MessageStore, *ui.Page, *recordingNotifier) {
	t.Helper()
	store, page, notifier := newTestStore(t, repo)
	return NewForm(store, page, notifier, func() time.Time { return fixedNow }), store, page, notifier
}

func fill(page *ui.Page, name, email, message string) {
	page.SetFieldValue(ui.FieldName, name)
	page.SetFieldValue(ui.FieldEmail, email)
	page.SetFieldValue(ui.FieldMessage, message)
}

func TestForm_Submit_Valid(t *testing.T) {
	repo := &mockGuestbookRepository{}
	form, store, page, notifier := newTestForm(t, repo)
	fill(page, "Al", "al@example.com", "Hello there, friend!")

	added, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected message to be added")
	}

	want := model.Message{
		ID:        fixedNow.UnixMilli(),
		Name:      "Al",
		Email:     "al@example.com",
		Message:   "Hello there, friend!",
		Timestamp: "Oct 18, 2026, 03:04 PM",
	}
	if got := store.Messages(); len(got) != 1 || got[0] != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if len(repo.messages) != 1 || repo.messages[0] != want {
		t.Errorf("expected message to be stored, got %+v", repo.messages)
	}
	if page.Text(ui.RegionTotal) != "1" {
		t.Errorf("expected count 1, got %q", page.Text(ui.RegionTotal))
	}
	for _, f := range ui.Fields {
		if v := page.FieldValue(f); v != "" {
			t.Errorf("expected %s reset, got %q", f, v)
		}
	}
	if len(notifier.shown) != 1 || notifier.shown[0] != SentNotice {
		t.Errorf("expected sent notice, got %v", notifier.shown)
	}
}

func TestForm_Submit_Invalid(t *testing.T) {
	repo := &mockGuestbookRepository{messages: sampleMessages()}
	form, store, page, notifier := newTestForm(t, repo)
	fill(page, "A", "bad", "short")

	added, err := form.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatal("invalid submission must not be added")
	}
	if store.Len() != 2 || repo.saveMessagesCalls != 0 {
		t.Errorf("collection must be untouched, len=%d saves=%d", store.Len(), repo.saveMessagesCalls)
	}
	if len(notifier.shown) != 0 {
		t.Error("invalid submission must not notify")
	}

	checks := map[ui.Field]string{
		ui.FieldName:    ErrNameTooShort,
		ui.FieldEmail:   ErrEmailInvalid,
		ui.FieldMessage: ErrMessageTooShort,
	}
	for f, msg := range checks {
		st := page.Field(f)
		if !st.ErrorVisible || !st.Invalid || st.Error != msg {
			t.Errorf("%s: expected error %q, got %+v", f, msg, st)
		}
	}
	if page.FieldValue(ui.FieldName) != "A" {
		t.Error("field values must be kept after a failed submission")
	}
}

func TestForm_Submit_ClearsPreviousErrors(t *testing.T) {
	form, _, page, _ := newTestForm(t, &mockGuestbookRepository{})
	fill(page, "A", "al@example.com", "Hello there, friend!")
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page.SetFieldValue(ui.FieldName, "Al")
	page.SetFieldValue(ui.FieldEmail, "bad")
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := page.Field(ui.FieldName); st.ErrorVisible || st.Invalid {
		t.Errorf("name error should be gone, got %+v", st)
	}
	if st := page.Field(ui.FieldEmail); !st.ErrorVisible {
		t.Errorf("expected email error, got %+v", st)
	}
}

func TestForm_Submit_PersistError(t *testing.T) {
	repo := &mockGuestbookRepository{
		saveMessagesFunc: func(context.Context, []model.Message) error { return errors.New("disk full") },
	}
	form, _, page, notifier := newTestForm(t, repo)
	fill(page, "Al", "al@example.com", "Hello there, friend!")

	if _, err := form.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(notifier.shown) != 0 {
		t.Error("failed submission must not notify")
	}
}

func TestForm_Clear(t *testing.T) {
	form, _, page, _ := newTestForm(t, &mockGuestbookRepository{})
	fill(page, "A", "bad", "short")
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	form.Clear()

	for _, f := range ui.Fields {
		st := page.Field(f)
		if st.Value != "" || st.ErrorVisible || st.Invalid || st.Error != "" {
			t.Errorf("%s: expected clean field, got %+v", f, st)
		}
	}
}
