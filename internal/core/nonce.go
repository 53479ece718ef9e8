package core

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Nonce actions bind a token to one specific form.
const (
	NonceActionActivation   = "activation"
	NonceActionReset        = "reset"
	NonceActionResetRequest = "reset-request"
)

const nonceLifetime = 12 * time.Hour

// NonceService issues and verifies stateless anti-forgery tokens:
// HMAC-SHA256 over action and expiry, keyed by a server secret.
type NonceService struct {
	secret []byte
	now    func() time.Time
}

func NewNonceService(secret string) *NonceService {
	return &NonceService{secret: []byte(secret), now: time.Now}
}

// Issue returns a token of the form "<unix-expiry>.<hex-mac>".
func (s *NonceService) Issue(action string) string {
	expires := s.now().Add(nonceLifetime).Unix()
	return fmt.Sprintf("%d.%s", expires, s.sign(action, expires))
}

// Verify reports whether the token is well-formed, unexpired, and signed
// for the given action.
func (s *NonceService) Verify(token, action string) bool {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return false
	}
	expires, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return false
	}
	if s.now().Unix() > expires {
		return false
	}
	return hmac.Equal([]byte(parts[1]), []byte(s.sign(action, expires)))
}

func (s *NonceService) sign(action string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s|%d", action, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
