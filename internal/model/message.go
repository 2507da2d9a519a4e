package model

import "time"

// TimestampLayout is the display format of Message.Timestamp,
// e.g. "Oct 18, 2026, 03:04 PM".
const TimestampLayout = "Jan 2, 2006, 03:04 PM"

// Message is one guestbook entry. The JSON shape is the stored format of the
// "messages" key and must stay stable for returning visitors.
type Message struct {
	// ID is the creation time in Unix milliseconds and doubles as the key.
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// NewMessage builds a record stamped with t.
func NewMessage(t time.Time, name, email, message string) Message {
	return Message{
		ID:        t.UnixMilli(),
		Name:      name,
		Email:     email,
		Message:   message,
		Timestamp: t.Format(TimestampLayout),
	}
}

// Submission carries the raw values of the message form.
type Submission struct {
	Name    string
	Email   string
	Message string
}
