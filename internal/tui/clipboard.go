package tui

import (
	"errors"

	"github.com/atotto/clipboard"
)

// errNoClipboard is returned when no clipboard sink was injected.
var errNoClipboard = errors.New("no clipboard available")

// Clipboard abstracts the system clipboard so tests and headless
// environments can substitute a fake.
type Clipboard interface {
	WriteString(text string) error
}

// SystemClipboard writes to the real OS clipboard.
type SystemClipboard struct{}

// WriteString copies text to the system clipboard.
func (SystemClipboard) WriteString(text string) error {
	return clipboard.WriteAll(text)
}
