package payment

import "context"

// UpdateFunc receives a copy of the stored payment and returns the payment to persist.
type UpdateFunc func(stored *Payment) (*Payment, error)

// Store persists payments. Unknown ids return a PaymentError with code ErrCodeNotFound.
type Store interface {
	CreatePayment(ctx context.Context, p *Payment) error
	GetPayment(ctx context.Context, id string) (*Payment, error)

	// UpdatePayment must serialize writers of the same payment.
	UpdatePayment(ctx context.Context, id string, fn UpdateFunc) (*Payment, error)
}
