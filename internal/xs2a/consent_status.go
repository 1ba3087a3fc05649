package xs2a

import "fmt"

// ConsentStatus is the lifecycle status of an AIS or PIIS consent.
type ConsentStatus string

const (
	ConsentStatusReceived            ConsentStatus = "received"
	ConsentStatusRejected            ConsentStatus = "rejected"
	ConsentStatusValid               ConsentStatus = "valid"
	ConsentStatusRevokedByPsu        ConsentStatus = "revokedByPsu"
	ConsentStatusExpired             ConsentStatus = "expired"
	ConsentStatusTerminatedByTpp     ConsentStatus = "terminatedByTpp"
	ConsentStatusTerminatedByAspsp   ConsentStatus = "terminatedByAspsp"
	ConsentStatusPartiallyAuthorised ConsentStatus = "partiallyAuthorised"
)

// IsFinalised reports whether the consent can no longer change status.
func (s ConsentStatus) IsFinalised() bool {
	switch s {
	case ConsentStatusRejected, ConsentStatusRevokedByPsu, ConsentStatusExpired,
		ConsentStatusTerminatedByTpp, ConsentStatusTerminatedByAspsp:
		return true
	}
	return false
}

func (s ConsentStatus) Validate() error {
	switch s {
	case ConsentStatusReceived, ConsentStatusValid, ConsentStatusPartiallyAuthorised:
		return nil
	}
	if s.IsFinalised() {
		return nil
	}
	return fmt.Errorf("unknown consent status %q", string(s))
}
