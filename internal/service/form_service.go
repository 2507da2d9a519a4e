package service

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/ui"
)

const (
	minNameLength    = 2
	minMessageLength = 10

	// SentNotice is shown after a successful submission.
	SentNotice = "Message sent successfully!"
)

// Validation messages, per field.
const (
	ErrNameRequired    = "Name is required"
	ErrNameTooShort    = "Name must be at least 2 characters"
	ErrEmailRequired   = "Email is required"
	ErrEmailInvalid    = "Please enter a valid email address"
	ErrMessageRequired = "Message is required"
	ErrMessageTooShort = "Message must be at least 10 characters"
)

// emailPattern matches local@domain.tld where no part contains "@" or any
// Unicode whitespace (separators, vertical tab and the BOM included).
var emailPattern = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

// trim strips surrounding Unicode whitespace and byte order marks.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// FieldError is one failed rule, shown in the field's error region.
type FieldError struct {
	Field ui.Field
	Text  string
}

// Validate trims every field and checks all of them. It returns the trimmed
// submission and every failure in field order; nothing short-circuits.
func Validate(sub model.Submission) (model.Submission, []FieldError) {
	clean := model.Submission{
		Name:    trim(sub.Name),
		Email:   trim(sub.Email),
		Message: trim(sub.Message),
	}

	var errs []FieldError
	switch {
	case clean.Name == "":
		errs = append(errs, FieldError{ui.FieldName, ErrNameRequired})
	case utf8.RuneCountInString(clean.Name) < minNameLength:
		errs = append(errs, FieldError{ui.FieldName, ErrNameTooShort})
	}
	switch {
	case clean.Email == "":
		errs = append(errs, FieldError{ui.FieldEmail, ErrEmailRequired})
	case !emailPattern.MatchString(clean.Email):
		errs = append(errs, FieldError{ui.FieldEmail, ErrEmailInvalid})
	}
	switch {
	case clean.Message == "":
		errs = append(errs, FieldError{ui.FieldMessage, ErrMessageRequired})
	case utf8.RuneCountInString(clean.Message) < minMessageLength:
		errs = append(errs, FieldError{ui.FieldMessage, ErrMessageTooShort})
	}
	return clean, errs
}

// Form handles the message form: submission and the clear button.
type Form struct {
	store    *MessageStore
	surface  ui.Surface
	notifier Notifier
	now      func() time.Time
}

// NewForm creates a Form. A nil now uses time.Now.
func NewForm(store *MessageStore, surface ui.Surface, notifier Notifier, now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	return &Form{store: store, surface: surface, notifier: notifier, now: now}
}

// Submit validates the current field values. Failures are written to the
// page and leave the collection untouched; success stores a new message,
// empties the form and shows a notification. It reports whether a message
// was added.
func (f *Form) Submit(ctx context.Context) (bool, error) {
	f.surface.ClearFieldErrors()

	clean, errs := Validate(model.Submission{
		Name:    f.surface.FieldValue(ui.FieldName),
		Email:   f.surface.FieldValue(ui.FieldEmail),
		Message: f.surface.FieldValue(ui.FieldMessage),
	})
	if len(errs) > 0 {
		for _, fe := range errs {
			f.surface.ShowFieldError(fe.Field, fe.Text)
		}
		return false, nil
	}

	f.store.Add(model.NewMessage(f.now(), clean.Name, clean.Email, clean.Message))
	if err := f.store.Persist(ctx); err != nil {
		return true, err
	}
	if err := f.store.Render(); err != nil {
		return true, err
	}
	f.store.UpdateCount()

	f.surface.ResetFields()
	f.notifier.Show(SentNotice)
	return true, nil
}

// Clear empties the form and its error state.
func (f *Form) Clear() {
	f.surface.ResetFields()
	f.surface.ClearFieldErrors()
}
