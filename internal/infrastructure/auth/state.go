package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// stateBytes is the entropy of an opaque CSRF state.
const stateBytes = 32

// GenerateState returns a base64url encoded random CSRF state.
func GenerateState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
