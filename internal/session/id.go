package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateID generates a cryptographically secure session ID.
// 16 bytes = 128 bits of entropy, hex encoded.
func GenerateID() (string, error) {
	const size = 16

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}

	return hex.EncodeToString(b), nil
}
