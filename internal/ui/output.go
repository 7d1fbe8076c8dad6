package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	mutedColor   = color.New(color.Faint)

	symCheck = "✔"
	symCross = "✖"
)

// SetColor turns colored CLI output on or off. NO_COLOR is honored by
// fatih/color on its own; this is for --no-color and the mono theme.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, successColor.Sprint(symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, errorColor.Sprint(symCross+" "+msg)) }
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, mutedColor.Sprint(msg)) }

// Notify prints a one-line notification: OK when ok, Fail otherwise.
func Notify(w io.Writer, msg string, ok bool) {
	if ok {
		OK(w, msg)
		return
	}
	Fail(w, msg)
}
