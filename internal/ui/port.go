package ui

// Port is the interaction capability behind the page's modal dialogs.
// Every call returns only once the visitor has answered.
type Port interface {
	// Prompt asks for a line of text. ok is false when the visitor declined.
	Prompt(message string) (answer string, ok bool)
	// Confirm asks a yes/no question.
	Confirm(message string) bool
	// Alert shows an informational message.
	Alert(message string)
}

// DialogKind identifies which primitive opened a dialog.
type DialogKind string

const (
	DialogPrompt  DialogKind = "prompt"
	DialogConfirm DialogKind = "confirm"
	DialogAlert   DialogKind = "alert"
)

// Dialog is a modal dialog shown on the page.
type Dialog struct {
	Kind    DialogKind
	Message string
}

// Answers holds dialog answers that arrived with a request.
// A nil pointer means the question has not been answered yet.
type Answers struct {
	Prompt *string
	// PromptDeclined reports that the visitor dismissed the prompt.
	PromptDeclined bool
	Confirm        *bool
}

// RequestPort answers dialogs from Answers. A question without an answer is
// opened as a dialog on the page so the next request can carry the answer;
// the call itself then reports a decline (empty prompt, false confirm).
type RequestPort struct {
	page    *Page
	answers Answers
}

// NewRequestPort returns a Port bound to page.
func NewRequestPort(page *Page, answers Answers) *RequestPort {
	return &RequestPort{page: page, answers: answers}
}

var _ Port = (*RequestPort)(nil)

func (p *RequestPort) Prompt(message string) (string, bool) {
	switch {
	case p.answers.PromptDeclined:
		return "", false
	case p.answers.Prompt != nil:
		return *p.answers.Prompt, true
	default:
		p.page.ShowDialog(Dialog{Kind: DialogPrompt, Message: message})
		return "", false
	}
}

func (p *RequestPort) Confirm(message string) bool {
	if p.answers.Confirm != nil {
		return *p.answers.Confirm
	}
	p.page.ShowDialog(Dialog{Kind: DialogConfirm, Message: message})
	return false
}

func (p *RequestPort) Alert(message string) {
	p.page.ShowDialog(Dialog{Kind: DialogAlert, Message: message})
}
