// Package signature verifies HMAC-SHA256 request signatures computed over
// raw body bytes.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Compute returns the lowercase hex HMAC-SHA256 digest of body under secret.
func Compute(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether provided matches the expected digest for body. The
// comparison is constant time; a missing signature fails the same way as a
// mismatched one.
func Verify(secret string, body []byte, provided string) bool {
	if provided == "" {
		return false
	}
	expected := Compute(secret, body)
	return hmac.Equal([]byte(expected), []byte(provided))
}
