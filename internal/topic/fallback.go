package topic

import (
	"strconv"
	"strings"
	"time"
)

const (
	// IDLength is the nominal Topic ID length in characters.
	IDLength = 15

	// CopiedFlagDuration is how long the "copied to clipboard" indicator
	// stays lit before clearing itself.
	CopiedFlagDuration = 2000 * time.Millisecond
)

// FallbackID synthesizes a Topic ID from the given time when the remote
// generation service is unavailable. The epoch-millisecond timestamp is
// rendered as a decimal string, right-padded with '0' to IDLength, then
// truncated to exactly IDLength characters.
func FallbackID(now time.Time) string {
	s := strconv.FormatInt(now.UnixMilli(), 10)
	if len(s) < IDLength {
		s += strings.Repeat("0", IDLength-len(s))
	}
	return s[:IDLength]
}
