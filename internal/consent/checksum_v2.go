package consent

import (
	"encoding/base64"
	"encoding/json"
	"maps"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/crypto"
	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

const checksumV2Version = "v2"

// ChecksumV2 seals the full TPP access model and the accounts granted by the ASPSP.
//
// Compared with v1 it also covers the global access flags (availableAccounts,
// availableAccountsWithBalance, allPsd2) and additional information, and it sorts references so
// that reordering a list does not break the seal.
//
// When the ASPSP has linked references to its accounts a third segment is written: the base64
// encoded JSON map of reference type to the digest of the granted references of that type.
type ChecksumV2 struct{}

type checksumV2Snapshot struct {
	RecurringIndicator           bool                    `json:"recurringIndicator"`
	CombinedServiceIndicator     bool                    `json:"combinedServiceIndicator"`
	ValidUntil                   string                  `json:"validUntil"`
	FrequencyPerDay              int                     `json:"frequencyPerDay"`
	Accounts                     []xs2a.AccountReference `json:"accounts"`
	Balances                     []xs2a.AccountReference `json:"balances"`
	Transactions                 []xs2a.AccountReference `json:"transactions"`
	AvailableAccounts            xs2a.AccountAccessType  `json:"availableAccounts"`
	AvailableAccountsWithBalance xs2a.AccountAccessType  `json:"availableAccountsWithBalance"`
	AllPsd2                      xs2a.AccountAccessType  `json:"allPsd2"`
	OwnerName                    []xs2a.AccountReference `json:"ownerName"`
	TrustedBeneficiaries         []xs2a.AccountReference `json:"trustedBeneficiaries"`
}

func (ChecksumV2) Version() string { return checksumV2Version }

func (ChecksumV2) snapshot(c *Consent) checksumV2Snapshot {
	access := c.TppAccess
	s := checksumV2Snapshot{
		RecurringIndicator:           c.RecurringIndicator,
		CombinedServiceIndicator:     c.CombinedServiceIndicator,
		ValidUntil:                   c.ValidUntilDate(),
		FrequencyPerDay:              c.FrequencyPerDay,
		Accounts:                     nonNilRefs(xs2a.SortedAccountReferences(access.Accounts)),
		Balances:                     nonNilRefs(xs2a.SortedAccountReferences(access.Balances)),
		Transactions:                 nonNilRefs(xs2a.SortedAccountReferences(access.Transactions)),
		AvailableAccounts:            access.AvailableAccounts,
		AvailableAccountsWithBalance: access.AvailableAccountsWithBalance,
		AllPsd2:                      access.AllPsd2,
		OwnerName:                    []xs2a.AccountReference{},
		TrustedBeneficiaries:         []xs2a.AccountReference{},
	}
	if info := access.AdditionalInformation; info != nil {
		s.OwnerName = nonNilRefs(xs2a.SortedAccountReferences(info.OwnerName))
		s.TrustedBeneficiaries = nonNilRefs(xs2a.SortedAccountReferences(info.TrustedBeneficiaries))
	}
	return s
}

// aspspDigests returns the digest of the granted ASPSP references per reference type.
func (ChecksumV2) aspspDigests(c *Consent) (map[xs2a.AccountReferenceType]string, error) {
	byType := make(map[xs2a.AccountReferenceType][]xs2a.AccountReference)
	for _, ref := range c.AspspAccess.AllReferences() {
		if !ref.IsGranted() {
			continue
		}
		byType[ref.ReferenceType()] = append(byType[ref.ReferenceType()], ref)
	}

	digests := make(map[xs2a.AccountReferenceType]string, len(byType))
	for refType, refs := range byType {
		digest, err := crypto.DigestJSON(refs)
		if err != nil {
			return nil, err
		}
		digests[refType] = digest
	}
	return digests, nil
}

func (v ChecksumV2) Calculate(c *Consent) ([]byte, error) {
	if c == nil {
		return nil, crypto.NewValidationError("consent is nil")
	}
	digest, err := crypto.DigestJSON(v.snapshot(c))
	if err != nil {
		return nil, crypto.WrapChecksumError(err, "failed to calculate v2 consent checksum")
	}

	aspsp, err := v.aspspDigests(c)
	if err != nil {
		return nil, crypto.WrapChecksumError(err, "failed to calculate v2 aspsp access checksum")
	}
	if len(aspsp) == 0 {
		return joinChecksum(checksumV2Version, digest), nil
	}

	encoded, err := crypto.CanonicalJSON(aspsp)
	if err != nil {
		return nil, crypto.WrapChecksumError(err, "failed to encode v2 aspsp access checksum")
	}
	return joinChecksum(checksumV2Version, digest, base64.StdEncoding.EncodeToString(encoded)), nil
}

func (v ChecksumV2) Verify(c *Consent, checksum []byte) bool {
	if c == nil {
		return false
	}
	segments, ok := splitChecksum(checksum)
	if !ok || len(segments) > 3 || segments[0] != checksumV2Version {
		return false
	}
	if !crypto.VerifyJSONDigest(v.snapshot(c), segments[1]) {
		return false
	}

	current, err := v.aspspDigests(c)
	if err != nil {
		return false
	}

	stored := map[xs2a.AccountReferenceType]string{}
	if len(segments) == 3 {
		decoded, err := base64.StdEncoding.DecodeString(segments[2])
		if err != nil {
			return false
		}
		if err := json.Unmarshal(decoded, &stored); err != nil {
			return false
		}
	}

	// every granted reference type must match; granting or withdrawing a type breaks the seal
	return maps.Equal(stored, current)
}
