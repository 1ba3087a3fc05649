// Package payment stores initiated payments and tracks their transaction status.
//
// Payments are executed or cancelled by the SCA flow once the PSU has authorised the request;
// this package only holds the payment and guards its status changes.
package payment

import (
	"fmt"
	"slices"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// Service is the payment service named in the request path.
type Service string

const (
	ServiceSingle   Service = "payments"
	ServiceBulk     Service = "bulk-payments"
	ServicePeriodic Service = "periodic-payments"
)

func (s Service) Validate() error {
	switch s {
	case ServiceSingle, ServiceBulk, ServicePeriodic:
		return nil
	}
	return fmt.Errorf("unknown payment service %q", string(s))
}

// Amount is a currency amount. Amount is kept as the decimal string sent by the TPP.
type Amount struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// Payment is an initiated payment.
type Payment struct {
	ID                    string
	PaymentService        Service
	PaymentProduct        string
	TppID                 string
	PsuData               xs2a.PsuIdData
	DebtorAccount         xs2a.AccountReference
	CreditorAccount       xs2a.AccountReference
	CreditorName          string
	InstructedAmount      Amount
	RemittanceInformation string
	TransactionStatus     xs2a.TransactionStatus

	// Authorisations and CancellationAuthorisations hold the ids of the authorisations started for the payment
	Authorisations             []string
	CancellationAuthorisations []string

	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// Clone returns a deep copy of the payment.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	out := *p
	out.Authorisations = slices.Clone(p.Authorisations)
	out.CancellationAuthorisations = slices.Clone(p.CancellationAuthorisations)
	return &out
}
