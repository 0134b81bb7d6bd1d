package tui

import (
	"os"

	"golang.org/x/term"
)

// GetTerminalSize returns the current terminal width and height with sane
// fallbacks when stdout is not a terminal.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return width, height
}
