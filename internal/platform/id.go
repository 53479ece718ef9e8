package platform

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}

// NewKey returns an opaque random key of 2*n hex characters, used for
// activation keys, password-reset keys, and session tokens.
func NewKey(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	return hex.EncodeToString(b)
}
