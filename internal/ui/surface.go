// Package ui models the page the guestbook writes into: named display regions,
// form fields with their error state, transient notifications and the modal
// dialogs raised through the interaction Port.
package ui

import "html/template"

// Region names a display area of the page.
type Region string

const (
	RegionWelcome  Region = "welcome-speech"
	RegionMessages Region = "messagesContainer"
	RegionTotal    Region = "totalMessages"
)

// Field names a form input.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// ErrorRegion returns the id of the region holding f's error text.
func (f Field) ErrorRegion() Region {
	return Region(string(f) + "Error")
}

// Surface is what the guestbook core writes into.
type Surface interface {
	// SetText replaces the region's content with plain text.
	SetText(r Region, text string)
	// SetHTML replaces the region's content with markup.
	SetHTML(r Region, html template.HTML)
	Text(r Region) string

	FieldValue(f Field) string
	SetFieldValue(f Field, value string)
	// ShowFieldError writes msg into the field's error region, makes the
	// region visible and flags the input.
	ShowFieldError(f Field, msg string)
	// ClearFieldErrors hides every error region and removes every input flag.
	ClearFieldErrors()
	// ResetFields empties every input.
	ResetFields()
}

// FieldState is the rendered state of one input and its error region.
type FieldState struct {
	Value        string
	Error        string
	ErrorVisible bool
	// Invalid is the input-error CSS flag.
	Invalid bool
}
