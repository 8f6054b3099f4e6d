package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RandomToken returns a hex encoded random token of n bytes.
func RandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the sha256 hex digest of a token, used to store reset
// tokens without keeping the raw value.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ReferralCode returns an 8 character code without ambiguous glyphs.
func ReferralCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, v := range b {
		sb.WriteByte(referralAlphabet[int(v)%len(referralAlphabet)])
	}
	return sb.String(), nil
}
