package topic

import (
	"strconv"
	"testing"
	"time"
)

func TestFallbackIDLength(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
	}{
		{"current era", time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)},
		{"epoch", time.UnixMilli(0)},
		{"single digit millis", time.UnixMilli(7)},
		{"far future", time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := FallbackID(tt.at)
			if len(id) != IDLength {
				t.Errorf("FallbackID(%v) length = %d, want %d", tt.at, len(id), IDLength)
			}
			for i, r := range id {
				if r < '0' || r > '9' {
					t.Errorf("FallbackID(%v)[%d] = %q, want a digit", tt.at, i, r)
				}
			}
		})
	}
}

func TestFallbackIDPadsShortTimestamps(t *testing.T) {
	id := FallbackID(time.UnixMilli(42))
	if id != "420000000000000" {
		t.Errorf("FallbackID = %q, want %q", id, "420000000000000")
	}
}

func TestFallbackIDTruncatesLongTimestamps(t *testing.T) {
	// Year 33658: UnixMilli has 16 digits, so the string gets cut.
	at := time.UnixMilli(1_000_000_000_000_000)
	id := FallbackID(at)
	if id != "100000000000000" {
		t.Errorf("FallbackID = %q, want %q", id, "100000000000000")
	}
}

func TestFallbackIDStartsWithTimestamp(t *testing.T) {
	at := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	id := FallbackID(at)
	// A 2026 timestamp is 13 digits; the last two are padding.
	if id[:len(millis)] != millis {
		t.Errorf("FallbackID prefix = %q, want %q", id[:len(millis)], millis)
	}
	if id[len(millis):] != "00" {
		t.Errorf("FallbackID padding = %q, want %q", id[len(millis):], "00")
	}
}
