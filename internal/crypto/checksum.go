// this file contains functions to verify SHA-512 digests

package crypto

import "crypto/subtle"

// VerifyDigest reports whether data matches the expected base64 SHA-512 digest.
func VerifyDigest(data []byte, expectedDigest string) bool {
	digest, err := Digest(data)
	if err != nil {
		return false
	}
	return equalDigests(digest, expectedDigest)
}

// VerifyJSONDigest reports whether the canonical JSON form of v matches the expected digest.
func VerifyJSONDigest(v any, expectedDigest string) bool {
	digest, err := DigestJSON(v)
	if err != nil {
		return false
	}
	return equalDigests(digest, expectedDigest)
}

func equalDigests(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
