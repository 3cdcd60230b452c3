package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	secret := "test-secret-key"
	body := []byte(`{"message_id":"m1"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	t.Run("valid signature", func(t *testing.T) {
		assert.True(Verify(secret, body, valid))
	})

	t.Run("tampered body", func(t *testing.T) {
		assert.False(Verify(secret, []byte(`{"message_id":"m2"}`), valid))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(Verify("other-secret", body, valid))
	})

	t.Run("garbage signature", func(t *testing.T) {
		assert.False(Verify(secret, body, "deadbeef"))
	})

	t.Run("missing signature", func(t *testing.T) {
		assert.False(Verify(secret, body, ""))
	})
}

func TestCompute(t *testing.T) {
	assert := assert.New(t)

	digest := Compute("secret", []byte("payload"))
	assert.Len(digest, 64)
	assert.Equal(strings.ToLower(digest), digest)
	assert.Equal(digest, Compute("secret", []byte("payload")))
}
