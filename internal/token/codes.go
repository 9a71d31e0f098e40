package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// VerificationCode derives the anonymous status-lookup code for an order:
// base64(SHA-256(orderID || salt)). Checking a supplied salt always means
// recomputing this and comparing against the stored value; the stored
// value is never compared directly against caller input.
func VerificationCode(orderID, salt string) string {
	sum := sha256.Sum256([]byte(orderID + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// NewRedeemCode returns a fresh single-use redeem secret: 32 bytes from
// crypto/rand, URL-safe base64 without padding.
func NewRedeemCode() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading entropy for redeem code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
