// Package clipboard pushes text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System writes to the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the
// Windows API depending on platform).
type System struct{}

// Copy replaces the clipboard contents with text.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no clipboard tool: install xclip, xsel or wl-clipboard")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Discard drops everything. Used when the clipboard is disabled.
type Discard struct{}

// Copy does nothing.
func (Discard) Copy(string) error { return nil }

// Recorder keeps the last copied text in memory. Tests use it in place of
// the system clipboard.
type Recorder struct {
	Last  string
	Count int
	Err   error
}

// Copy records text, or returns r.Err if set.
func (r *Recorder) Copy(text string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Last = text
	r.Count++
	return nil
}
