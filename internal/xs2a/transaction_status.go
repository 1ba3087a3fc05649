package xs2a

import "fmt"

// TransactionStatus is the ISO 20022 status of a payment.
type TransactionStatus string

const (
	TransactionStatusReceived                    TransactionStatus = "RCVD"
	TransactionStatusAcceptedTechnicalValidation TransactionStatus = "ACTC"
	TransactionStatusAcceptedCustomerProfile     TransactionStatus = "ACCP"
	TransactionStatusAcceptedSettlementCompleted TransactionStatus = "ACSC"
	TransactionStatusPartiallyAccepted           TransactionStatus = "PATC"
	TransactionStatusRejected                    TransactionStatus = "RJCT"
	TransactionStatusCancelled                   TransactionStatus = "CANC"
)

// IsFinalised reports whether the payment can no longer change status.
func (s TransactionStatus) IsFinalised() bool {
	switch s {
	case TransactionStatusAcceptedSettlementCompleted, TransactionStatusRejected, TransactionStatusCancelled:
		return true
	}
	return false
}

func (s TransactionStatus) Validate() error {
	switch s {
	case TransactionStatusReceived, TransactionStatusAcceptedTechnicalValidation,
		TransactionStatusAcceptedCustomerProfile, TransactionStatusAcceptedSettlementCompleted,
		TransactionStatusPartiallyAccepted, TransactionStatusRejected, TransactionStatusCancelled:
		return nil
	}
	return fmt.Errorf("unknown transaction status %q", string(s))
}
