// Package clipboard copies text to the system clipboard and falls back to
// the OSC 52 terminal escape when no clipboard tool is available (headless
// boxes, SSH sessions).
package clipboard

import (
	"io"
	"os"
	"strings"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Outcome of a copy attempt.
type Outcome int

const (
	Failed Outcome = iota
	Copied
	CopiedFallback
)

func (o Outcome) OK() bool { return o != Failed }

// Message is the notification text for the outcome.
func (o Outcome) Message() string {
	if o.OK() {
		return "Copied to clipboard"
	}
	return "Copy failed"
}

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "system"
	case CopiedFallback:
		return "osc52"
	default:
		return "failed"
	}
}

// Copier writes to the clipboard. The zero value is not usable; use New.
type Copier struct {
	system   func(string) error
	terminal io.Writer
	env      func(string) string
}

// New returns a Copier that uses the platform clipboard and writes the
// fallback sequence to terminal.
func New(terminal io.Writer) *Copier {
	return &Copier{
		system:   sysclip.WriteAll,
		terminal: terminal,
		env:      os.Getenv,
	}
}

// Copy places text on the clipboard.
func (c *Copier) Copy(text string) Outcome {
	if c.system != nil && c.system(text) == nil {
		return Copied
	}
	if c.terminal == nil {
		return Failed
	}
	// a redirected file swallows the escape, nothing reaches a clipboard
	if f, ok := c.terminal.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return Failed
	}
	seq := osc52.New(text)
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.env("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.terminal); err != nil {
		return Failed
	}
	return CopiedFallback
}
