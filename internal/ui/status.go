package ui

import (
	"fmt"
	"io"
)

// OK prints a success line to w.
func OK(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line to w.
func Fail(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted follow-up line to w.
func Hint(w io.Writer, t Theme, msg string) {
	fmt.Fprintln(w, t.Muted.Render(msg))
}
