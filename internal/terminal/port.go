// Package terminal runs the guestbook's dialogs and page output on a plain
// reader and writer.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nadifa/guestbook/internal/ui"
)

// Port answers dialogs from lines read off in. End of input on a prompt
// counts as a decline.
type Port struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles
}

// NewPort returns a Port reading answers from in and asking on out.
func NewPort(in io.Reader, out io.Writer) *Port {
	return &Port{in: bufio.NewReader(in), out: out, styles: NewStyles(out)}
}

var _ ui.Port = (*Port)(nil)

// readLine returns the next line without its terminator. ok is false when
// input ended before anything was typed.
func (p *Port) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			slog.Warn("read answer failed", "error", err)
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (p *Port) Prompt(message string) (string, bool) {
	fmt.Fprintf(p.out, "%s ", p.styles.Dialog.Render(message))
	return p.readLine()
}

func (p *Port) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", p.styles.Dialog.Render(message))
	answer, ok := p.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *Port) Alert(message string) {
	fmt.Fprintln(p.out, p.styles.Dialog.Render(message))
}

// AssumeYes wraps a port so every confirmation is accepted without asking.
func AssumeYes(p ui.Port) ui.Port {
	return assumeYes{p}
}

type assumeYes struct {
	ui.Port
}

func (assumeYes) Confirm(string) bool { return true }
