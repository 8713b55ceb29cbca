package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestLen is the length of a hex-encoded SHA-256 digest.
const DigestLen = sha256.Size * 2

// HashSHA256Hex returns a SHA-256 hex digest of s.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Digest derives the session-store lookup key for a credential.
// The raw credential must never leave the process in any other form.
func Digest(credential string) string {
	return HashSHA256Hex(credential)
}

// isDigest reports whether s has the shape produced by Digest:
// exactly DigestLen lowercase hex characters.
func isDigest(s string) bool {
	if len(s) != DigestLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
