// this file provides the SHA-512 digest functions used for consent checksums.

package crypto

import (
	"crypto/sha512"
	"encoding/base64"
)

// Digest calculates the SHA-512 digest of data and returns it as standard base64.
//
// Use this for canonical JSON or any data already in memory.
// For Go values use DigestJSON which canonicalizes before hashing.
func Digest(data []byte) (string, error) {
	if len(data) == 0 {
		return "", NewValidationError("data is empty")
	}
	sum := sha512.Sum512(data)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// DigestJSON marshals v to canonical JSON (RFC 8785) and returns its SHA-512 digest.
func DigestJSON(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	return Digest(canonical)
}
