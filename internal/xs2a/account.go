package xs2a

import (
	"cmp"
	"slices"
)

// AccountReferenceType names the identifier carried by an AccountReference.
type AccountReferenceType string

const (
	AccountReferenceIBAN      AccountReferenceType = "iban"
	AccountReferenceBBAN      AccountReferenceType = "bban"
	AccountReferencePAN       AccountReferenceType = "pan"
	AccountReferenceMaskedPAN AccountReferenceType = "maskedPan"
	AccountReferenceMSISDN    AccountReferenceType = "msisdn"
)

// AccountReference identifies an account. Exactly one identifier is expected to be set.
//
// ResourceID and AspspAccountID are assigned by the ASPSP when it grants access to the account.
type AccountReference struct {
	Iban           string `json:"iban,omitempty"`
	Bban           string `json:"bban,omitempty"`
	Pan            string `json:"pan,omitempty"`
	MaskedPan      string `json:"maskedPan,omitempty"`
	Msisdn         string `json:"msisdn,omitempty"`
	Currency       string `json:"currency,omitempty"`
	ResourceID     string `json:"resourceId,omitempty"`
	AspspAccountID string `json:"aspspAccountId,omitempty"`
}

// ReferenceType returns the type of the identifier set on the reference.
func (r AccountReference) ReferenceType() AccountReferenceType {
	switch {
	case r.Iban != "":
		return AccountReferenceIBAN
	case r.Bban != "":
		return AccountReferenceBBAN
	case r.Pan != "":
		return AccountReferencePAN
	case r.MaskedPan != "":
		return AccountReferenceMaskedPAN
	case r.Msisdn != "":
		return AccountReferenceMSISDN
	}
	return ""
}

// Identifier returns the value of the identifier set on the reference.
func (r AccountReference) Identifier() string {
	switch r.ReferenceType() {
	case AccountReferenceIBAN:
		return r.Iban
	case AccountReferenceBBAN:
		return r.Bban
	case AccountReferencePAN:
		return r.Pan
	case AccountReferenceMaskedPAN:
		return r.MaskedPan
	case AccountReferenceMSISDN:
		return r.Msisdn
	}
	return ""
}

// IsGranted reports whether the ASPSP has linked the reference to one of its accounts.
func (r AccountReference) IsGranted() bool {
	return r.ResourceID != "" || r.AspspAccountID != ""
}

// CompareAccountReferences orders references by type, identifier and currency.
func CompareAccountReferences(a, b AccountReference) int {
	return cmp.Or(
		cmp.Compare(a.ReferenceType(), b.ReferenceType()),
		cmp.Compare(a.Identifier(), b.Identifier()),
		cmp.Compare(a.Currency, b.Currency),
		cmp.Compare(a.ResourceID, b.ResourceID),
		cmp.Compare(a.AspspAccountID, b.AspspAccountID),
	)
}

// SortedAccountReferences returns a sorted copy of refs.
func SortedAccountReferences(refs []AccountReference) []AccountReference {
	out := slices.Clone(refs)
	slices.SortFunc(out, CompareAccountReferences)
	return out
}

// AccountAccessType is used by the "all accounts" style consents.
type AccountAccessType string

const (
	AccountAccessAllAccounts              AccountAccessType = "allAccounts"
	AccountAccessAllAccountsWithOwnerName AccountAccessType = "allAccountsWithOwnerName"
)

// AdditionalInformationAccess requests access to additional account information.
type AdditionalInformationAccess struct {
	OwnerName            []AccountReference `json:"ownerName,omitempty"`
	TrustedBeneficiaries []AccountReference `json:"trustedBeneficiaries,omitempty"`
}

// AccountAccess is an access grant: which accounts may be read and for what purpose.
type AccountAccess struct {
	Accounts                     []AccountReference           `json:"accounts,omitempty"`
	Balances                     []AccountReference           `json:"balances,omitempty"`
	Transactions                 []AccountReference           `json:"transactions,omitempty"`
	AvailableAccounts            AccountAccessType            `json:"availableAccounts,omitempty"`
	AvailableAccountsWithBalance AccountAccessType            `json:"availableAccountsWithBalance,omitempty"`
	AllPsd2                      AccountAccessType            `json:"allPsd2,omitempty"`
	AdditionalInformation        *AdditionalInformationAccess `json:"additionalInformation,omitempty"`
}

// IsEmpty reports whether the grant names no accounts and no global access.
func (a AccountAccess) IsEmpty() bool {
	return len(a.Accounts) == 0 && len(a.Balances) == 0 && len(a.Transactions) == 0 &&
		a.AvailableAccounts == "" && a.AvailableAccountsWithBalance == "" && a.AllPsd2 == "" &&
		a.AdditionalInformation == nil
}

// AllReferences returns every reference in the grant, without duplicates, in a stable order.
func (a AccountAccess) AllReferences() []AccountReference {
	var all []AccountReference
	all = append(all, a.Accounts...)
	all = append(all, a.Balances...)
	all = append(all, a.Transactions...)
	if a.AdditionalInformation != nil {
		all = append(all, a.AdditionalInformation.OwnerName...)
		all = append(all, a.AdditionalInformation.TrustedBeneficiaries...)
	}
	all = SortedAccountReferences(all)
	return slices.Compact(all)
}

// Clone returns a deep copy of the access grant.
func (a AccountAccess) Clone() AccountAccess {
	out := a
	out.Accounts = slices.Clone(a.Accounts)
	out.Balances = slices.Clone(a.Balances)
	out.Transactions = slices.Clone(a.Transactions)
	if a.AdditionalInformation != nil {
		info := AdditionalInformationAccess{
			OwnerName:            slices.Clone(a.AdditionalInformation.OwnerName),
			TrustedBeneficiaries: slices.Clone(a.AdditionalInformation.TrustedBeneficiaries),
		}
		out.AdditionalInformation = &info
	}
	return out
}
