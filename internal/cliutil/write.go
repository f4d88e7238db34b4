// Package cliutil holds small helpers for command output.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef formats to w, reporting a failed write on stderr instead of
// returning it. Command output paths use it where a write error has no
// caller that could act on it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
