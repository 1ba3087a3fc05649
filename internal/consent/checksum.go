package consent

import (
	"strings"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// ChecksumDelimiter separates the segments of a stored checksum.
const ChecksumDelimiter = ";"

// ChecksumAlgorithm calculates and verifies the seal of a consent access grant.
//
// Implementations are pure: they only read the consent fields folded into their snapshot.
type ChecksumAlgorithm interface {
	// Version is the tag written as the first segment of every checksum the algorithm produces.
	Version() string

	// Calculate returns the checksum of the consent's current access snapshot.
	Calculate(c *Consent) ([]byte, error)

	// Verify reports whether checksum was produced by this algorithm over the consent's current snapshot.
	Verify(c *Consent, checksum []byte) bool
}

// splitChecksum splits a stored checksum into its segments.
// ok is false when the value is not in the <version>;<digest>[;...] format.
func splitChecksum(checksum []byte) (segments []string, ok bool) {
	if len(checksum) == 0 {
		return nil, false
	}
	segments = strings.Split(string(checksum), ChecksumDelimiter)
	if len(segments) < 2 {
		return nil, false
	}
	for _, s := range segments {
		if strings.TrimSpace(s) == "" {
			return nil, false
		}
	}
	return segments, true
}

// joinChecksum builds a stored checksum from its segments.
func joinChecksum(segments ...string) []byte {
	return []byte(strings.Join(segments, ChecksumDelimiter))
}

// nonNilRefs returns an empty slice for nil so absent and empty lists digest identically.
func nonNilRefs(refs []xs2a.AccountReference) []xs2a.AccountReference {
	if refs == nil {
		return []xs2a.AccountReference{}
	}
	return refs
}
