package consent

import (
	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

const checksumV1Version = "v1"

// ChecksumV1 seals the consent settings and the TPP account, balance and transaction references.
//
// It is kept to verify consents sealed before v2 was introduced. The v1 snapshot does not cover the
// global access flags or additional information, and reference order is significant.
type ChecksumV1 struct{}

type checksumV1Snapshot struct {
	RecurringIndicator       bool                    `json:"recurringIndicator"`
	CombinedServiceIndicator bool                    `json:"combinedServiceIndicator"`
	ValidUntil               string                  `json:"validUntil"`
	FrequencyPerDay          int                     `json:"frequencyPerDay"`
	Accounts                 []xs2a.AccountReference `json:"accounts"`
	Balances                 []xs2a.AccountReference `json:"balances"`
	Transactions             []xs2a.AccountReference `json:"transactions"`
}

func (ChecksumV1) Version() string { return checksumV1Version }

func (ChecksumV1) snapshot(c *Consent) checksumV1Snapshot {
	return checksumV1Snapshot{
		RecurringIndicator:       c.RecurringIndicator,
		CombinedServiceIndicator: c.CombinedServiceIndicator,
		ValidUntil:               c.ValidUntilDate(),
		FrequencyPerDay:          c.FrequencyPerDay,
		Accounts:                 nonNilRefs(c.TppAccess.Accounts),
		Balances:                 nonNilRefs(c.TppAccess.Balances),
		Transactions:             nonNilRefs(c.TppAccess.Transactions),
	}
}

func (v ChecksumV1) Calculate(c *Consent) ([]byte, error) {
	if c == nil {
		return nil, crypto.NewValidationError("consent is nil")
	}
	digest, err := crypto.DigestJSON(v.snapshot(c))
	if err != nil {
		return nil, crypto.WrapChecksumError(err, "failed to calculate v1 consent checksum")
	}
	return joinChecksum(checksumV1Version, digest), nil
}

func (v ChecksumV1) Verify(c *Consent, checksum []byte) bool {
	if c == nil {
		return false
	}
	segments, ok := splitChecksum(checksum)
	if !ok || len(segments) != 2 || segments[0] != checksumV1Version {
		return false
	}
	return crypto.VerifyJSONDigest(v.snapshot(c), segments[1])
}
