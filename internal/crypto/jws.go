// jws.go - detached JWS signatures for requests sent to the ASPSP adapter.
//
// The signature covers the exact request body and is sent in the X-JWS-Signature header using the
// detached content form of RFC 7515 Appendix F (header..signature).
// Ed25519 (EdDSA) and RSA (RS256) keys are supported.

package crypto

import (
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
)

// RequestSigner signs request bodies with a private JWK
type RequestSigner struct {
	key   jwk.Key
	alg   jwa.KeyAlgorithm
	keyID string
}

// LoadRequestSigner reads a JWK set file and returns a signer for its first key.
// The key must be a private Ed25519 or RSA key.
func LoadRequestSigner(path string) (*RequestSigner, error) {
	// #nosec G304 -- path is from server config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapValidationError(err, "failed to read signing key file")
	}

	set, err := jwk.Parse(data)
	if err != nil {
		return nil, WrapValidationError(err, "failed to parse signing key file")
	}
	if set.Len() != 1 {
		return nil, NewValidationError(fmt.Sprintf("signing key file must contain exactly one key, got %d", set.Len()))
	}

	key, ok := set.Key(0)
	if !ok {
		return nil, NewValidationError("signing key file does not contain a key")
	}
	return NewRequestSigner(key)
}

// NewRequestSigner returns a signer for a private key
func NewRequestSigner(key jwk.Key) (*RequestSigner, error) {
	if key == nil {
		return nil, NewValidationError("signing key is nil")
	}

	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, WrapValidationError(err, "failed to export signing key")
	}
	switch raw.(type) {
	case ed25519.PrivateKey, *rsa.PrivateKey:
	default:
		return nil, NewValidationError(fmt.Sprintf("signing key must be a private Ed25519 or RSA key, got %T", raw))
	}

	alg, err := signatureAlgorithm(key)
	if err != nil {
		return nil, err
	}

	keyID, _ := key.KeyID()
	return &RequestSigner{key: key, alg: alg, keyID: keyID}, nil
}

func (s *RequestSigner) KeyID() string { return s.keyID }

// SignDetached signs payload and returns the compact serialization without the payload segment
func (s *RequestSigner) SignDetached(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", NewValidationError("payload is empty")
	}

	signed, err := jws.Sign(payload, jws.WithKey(s.alg, s.key))
	if err != nil {
		return "", WrapInternalError(err, "failed to sign payload")
	}

	parts := strings.Split(string(signed), ".")
	if len(parts) != 3 {
		return "", NewInternalError("signed payload is not in compact serialization")
	}
	return parts[0] + ".." + parts[2], nil
}

// VerifyDetached checks a detached signature made by SignDetached against payload.
// key may be the public or the private key.
func VerifyDetached(signature string, payload []byte, key jwk.Key) error {
	parts := strings.Split(signature, ".")
	if len(parts) != 3 || parts[1] != "" {
		return NewValidationError("signature is not a detached compact JWS")
	}

	publicKey, err := jwk.PublicKeyOf(key)
	if err != nil {
		return WrapValidationError(err, "failed to get public key")
	}
	alg, err := signatureAlgorithm(key)
	if err != nil {
		return err
	}

	compact := parts[0] + "." + base64.RawURLEncoding.EncodeToString(payload) + "." + parts[2]
	if _, err := jws.Verify([]byte(compact), jws.WithKey(alg, publicKey)); err != nil {
		return WrapSignatureError(err, "signature does not match payload")
	}
	return nil
}

// signatureAlgorithm returns the alg of the key, or the default for its key type when it has none
func signatureAlgorithm(key jwk.Key) (jwa.KeyAlgorithm, error) {
	if alg, ok := key.Algorithm(); ok {
		return alg, nil
	}
	switch key.KeyType() {
	case jwa.OKP():
		return jwa.EdDSA(), nil
	case jwa.RSA():
		return jwa.RS256(), nil
	default:
		return nil, NewValidationError(fmt.Sprintf("unsupported key type %s", key.KeyType()))
	}
}
