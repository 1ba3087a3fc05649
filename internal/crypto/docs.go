// crypto package provides the low level digest functions used to seal consents,
// and the detached JWS signatures used on requests to a remote ASPSP adapter.
//
// Documents are canonicalized per RFC 8785 before hashing so that the digest does not depend on
// field order or whitespace. Digests are SHA-512 encoded as standard base64.
//
// See the consent package for the versioned checksum algorithms built on these functions.
package crypto
