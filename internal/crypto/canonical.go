// consent snapshots are canonicalized per RFC 8785 before hashing
// this implementation uses the gowebpki/jcs library to perform this canonicalization
package crypto

import (
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON converts JSON to canonical form per RFC 8785
// This ensures consistent hashing of JSON documents
//
// If the input is not valid JSON, an error is returned (handled by jcs library).
func CanonicalizeJSON(jsonData []byte) ([]byte, error) {
	return jcs.Transform(jsonData)
}

// CanonicalJSON marshals v and returns the canonical form of the resulting JSON.
func CanonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, WrapValidationError(err, "failed to marshal document")
	}
	canonical, err := CanonicalizeJSON(data)
	if err != nil {
		return nil, WrapInternalError(err, "failed to canonicalize document")
	}
	return canonical, nil
}
