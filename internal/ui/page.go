package ui

import (
	"html/template"
	"sync"
)

// Page is the in-memory document. It is safe for concurrent use because
// notification timers update it from their own goroutines.
type Page struct {
	mu            sync.Mutex
	text          map[Region]string
	html          map[Region]template.HTML
	fields        map[Field]*FieldState
	notifications []Notification
	nextID        int
	dialog        *Dialog
}

// NewPage returns an empty page with all form fields present.
func NewPage() *Page {
	p := &Page{
		text:   make(map[Region]string),
		html:   make(map[Region]template.HTML),
		fields: make(map[Field]*FieldState, len(Fields)),
	}
	for _, f := range Fields {
		p.fields[f] = &FieldState{}
	}
	return p
}

var _ Surface = (*Page)(nil)

func (p *Page) SetText(r Region, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.html, r)
	p.text[r] = text
}

func (p *Page) SetHTML(r Region, html template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.text, r)
	p.html[r] = html
}

func (p *Page) Text(r Region) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text[r]
}

// HTML returns the markup last written into r.
func (p *Page) HTML(r Region) template.HTML {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.html[r]
}

func (p *Page) field(f Field) *FieldState {
	st, ok := p.fields[f]
	if !ok {
		st = &FieldState{}
		p.fields[f] = st
	}
	return st
}

func (p *Page) FieldValue(f Field) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.field(f).Value
}

func (p *Page) SetFieldValue(f Field, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.field(f).Value = value
}

func (p *Page) ShowFieldError(f Field, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := p.field(f)
	st.Error = msg
	st.ErrorVisible = true
	st.Invalid = true
}

func (p *Page) ClearFieldErrors() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, st := range p.fields {
		st.Error = ""
		st.ErrorVisible = false
		st.Invalid = false
	}
}

func (p *Page) ResetFields() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, st := range p.fields {
		st.Value = ""
	}
}

// Field returns a copy of f's state.
func (p *Page) Field(f Field) FieldState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.field(f)
}

// ShowDialog opens d, replacing any dialog already open.
func (p *Page) ShowDialog(d Dialog) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialog = &d
}

// Dialog returns the open dialog, if any.
func (p *Page) Dialog() (Dialog, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dialog == nil {
		return Dialog{}, false
	}
	return *p.dialog, true
}

// Snapshot is a consistent copy of the page used for rendering.
type Snapshot struct {
	Welcome       string
	Messages      template.HTML
	Total         string
	Name          FieldState
	Email         FieldState
	Message       FieldState
	Notifications []Notification
	Dialog        *Dialog
}

// Snapshot copies the current page state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		Welcome:       p.text[RegionWelcome],
		Messages:      p.html[RegionMessages],
		Total:         p.text[RegionTotal],
		Name:          *p.field(FieldName),
		Email:         *p.field(FieldEmail),
		Message:       *p.field(FieldMessage),
		Notifications: append([]Notification(nil), p.notifications...),
	}
	if p.dialog != nil {
		d := *p.dialog
		s.Dialog = &d
	}
	return s
}
