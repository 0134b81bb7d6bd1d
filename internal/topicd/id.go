package topicd

import (
	"crypto/rand"
	"fmt"
)

// idLength is the number of decimal digits in a generated Topic ID.
const idLength = 15

// NewTopicID generates a random 15-digit decimal Topic ID. The first digit
// is never zero so the ID survives round-trips through systems that parse
// it numerically.
func NewTopicID() (string, error) {
	buf := make([]byte, idLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	id := make([]byte, idLength)
	id[0] = '1' + buf[0]%9
	for i := 1; i < idLength; i++ {
		id[i] = '0' + buf[i]%10
	}
	return string(id), nil
}
