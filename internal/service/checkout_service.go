package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/config"
	"github.com/truong-kyle/ht6/internal/domain"
	"github.com/truong-kyle/ht6/internal/payments"
	"github.com/truong-kyle/ht6/internal/pricing"
	"github.com/truong-kyle/ht6/pkg/errors"
)

// CheckoutService validates carts, prices them, and drives the payment
// provider. It holds no state between calls; every cart arrives complete in
// the request.
type CheckoutService struct {
	provider       payments.Provider
	currency       string
	frontendOrigin string
	logger         *zap.Logger
}

func NewCheckoutService(cfg *config.Config, provider payments.Provider, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		provider:       provider,
		currency:       cfg.Stripe.Currency,
		frontendOrigin: cfg.Frontend.Origin,
		logger:         logger,
	}
}

// CreateSession prices the cart and opens a checkout session with the
// provider. Validation runs before any provider call, so a rejected cart has
// no side effects.
func (s *CheckoutService) CreateSession(ctx context.Context, cart domain.Cart, uiMode domain.UIMode, customerEmail, idempotencyKey string) (*domain.CheckoutSession, error) {
	if uiMode == "" {
		uiMode = domain.UIModeEmbedded
	}
	if !uiMode.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "invalid uiMode",
			Fields:  map[string]string{"uiMode": "must be \"embedded\" or \"hosted\""},
		}
	}
	if err := cart.Validate(); err != nil {
		return nil, err
	}

	order := pricing.Price(cart)
	s.logger.Info("Cart priced for checkout session",
		zap.Int("line_items", len(order.LineItems)),
		zap.Int64("total_amount", order.TotalAmount),
		zap.String("ui_mode", string(uiMode)),
	)

	returnURL := s.frontendOrigin + "/complete?session_id={CHECKOUT_SESSION_ID}"
	sess, err := s.provider.CreateCheckoutSession(ctx, payments.CreateSessionParams{
		LineItems:      order.LineItems,
		Currency:       s.currency,
		UIMode:         uiMode,
		ReturnURL:      returnURL,
		SuccessURL:     returnURL,
		CancelURL:      s.frontendOrigin + "/checkout",
		CustomerEmail:  customerEmail,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Checkout session created", zap.String("session_id", sess.ID))
	return sess, nil
}

// CreateIntent prices the cart and creates a direct payment intent for the
// same total the session path would charge; both run through pricing.Price.
func (s *CheckoutService) CreateIntent(ctx context.Context, cart domain.Cart, idempotencyKey string) (*domain.PaymentIntent, error) {
	if err := cart.Validate(); err != nil {
		return nil, err
	}

	order := pricing.Price(cart)
	s.logger.Info("Cart priced for payment intent",
		zap.Int("line_items", len(order.LineItems)),
		zap.Int64("total_amount", order.TotalAmount),
	)

	intent, err := s.provider.CreatePaymentIntent(ctx, payments.CreateIntentParams{
		Amount:   order.TotalAmount,
		Currency: s.currency,
		Metadata: map[string]string{
			"item_count": strconv.Itoa(len(cart.Items)),
			"fee_count":  strconv.Itoa(len(cart.Fees)),
		},
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment intent created", zap.String("payment_intent_id", intent.ID))
	return intent, nil
}

// SessionStatus looks up a session's current state with the provider. A
// blank id fails validation before any provider call; an unknown id comes
// back as *errors.ErrNotFound.
func (s *CheckoutService) SessionStatus(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, &errors.ErrValidation{
			Message: "sessionId is required",
			Fields:  map[string]string{"sessionId": "sessionId query parameter is required"},
		}
	}
	return s.provider.RetrieveSession(ctx, sessionID)
}
