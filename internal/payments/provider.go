package payments

import (
	"context"

	"github.com/truong-kyle/ht6/internal/domain"
)

// CreateSessionParams carries everything a provider needs to open a checkout
// session for a priced order.
type CreateSessionParams struct {
	LineItems      []domain.LineItem
	Currency       string
	UIMode         domain.UIMode
	ReturnURL      string // embedded mode: where the payer lands after completing
	SuccessURL     string // hosted mode
	CancelURL      string // hosted mode
	CustomerEmail  string
	IdempotencyKey string
}

// CreateIntentParams carries the direct-charge parameters for a payment intent.
type CreateIntentParams struct {
	Amount         int64 // minor units
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

// Provider wraps all payment-provider calls. Implementations own timeouts and
// retries and normalize every failure into *errors.ErrProvider, or
// *errors.ErrNotFound for an unknown session id; SDK error types never
// cross this boundary.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*domain.CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, params CreateIntentParams) (*domain.PaymentIntent, error)
	RetrieveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
}
