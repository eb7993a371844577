package stripeadapter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/config"
	"github.com/truong-kyle/ht6/internal/domain"
	"github.com/truong-kyle/ht6/internal/payments"
	apperrors "github.com/truong-kyle/ht6/pkg/errors"
)

// Client implements payments.Provider against the Stripe API
type Client struct {
	api        *client.API
	timeout    time.Duration
	maxRetries uint64
	logger     *zap.Logger
}

var _ payments.Provider = (*Client)(nil)

// New creates a Stripe-backed provider client. Creation calls are retried a
// bounded number of times on transient failures; the caller's idempotency key
// makes those retries safe against duplicate charges.
func New(cfg config.StripeConfig, logger *zap.Logger) *Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &Client{
		api:        api,
		timeout:    cfg.Timeout,
		maxRetries: uint64(cfg.MaxRetries),
		logger:     logger,
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, p payments.CreateSessionParams) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItemParams(p.LineItems, p.Currency),
	}

	switch p.UIMode {
	case domain.UIModeHosted:
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeHosted))
		params.SuccessURL = stripe.String(p.SuccessURL)
		if p.CancelURL != "" {
			params.CancelURL = stripe.String(p.CancelURL)
		}
	default:
		params.UIMode = stripe.String(string(stripe.CheckoutSessionUIModeEmbedded))
		params.ReturnURL = stripe.String(p.ReturnURL)
	}

	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	var sess *stripe.CheckoutSession
	err := c.withRetry(ctx, "create checkout session", func(callCtx context.Context) error {
		params.Context = callCtx
		var callErr error
		sess, callErr = c.api.CheckoutSessions.New(params)
		return callErr
	})
	if err != nil {
		return nil, normalizeErr("checkout session", "", err)
	}

	return sessionFromStripe(sess), nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, p payments.CreateIntentParams) (*domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	var intent *stripe.PaymentIntent
	err := c.withRetry(ctx, "create payment intent", func(callCtx context.Context) error {
		params.Context = callCtx
		var callErr error
		intent, callErr = c.api.PaymentIntents.New(params)
		return callErr
	})
	if err != nil {
		return nil, normalizeErr("payment intent", "", err)
	}

	return &domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Status:       string(intent.Status),
	}, nil
}

// RetrieveSession is a read-only lookup, so it is a single attempt with the
// configured timeout and no retry.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = callCtx
	params.AddExpand("payment_intent")

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, normalizeErr("checkout session", sessionID, err)
	}

	return sessionFromStripe(sess), nil
}

// withRetry runs call with a per-attempt timeout, retrying transient failures
// up to maxRetries times with exponential backoff. Every attempt carries the
// same idempotency key, so the provider deduplicates repeated creations.
func (c *Client) withRetry(ctx context.Context, op string, call func(context.Context) error) error {
	attempt := 0
	run := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		err := call(callCtx)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn("Transient provider error, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.Retry(run, b)
}

// isTransient reports whether a provider failure is worth retrying. API
// errors with 4xx status codes are the provider rejecting the request and
// will not succeed on retry; 429/5xx and transport failures may.
func isTransient(err error) bool {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return stripeErr.HTTPStatusCode == http.StatusTooManyRequests || stripeErr.HTTPStatusCode >= 500
	}
	return true
}

// normalizeErr translates SDK failures into the service error taxonomy.
// A 404/resource-missing only means "not found" on lookups, where id names
// the resource asked for; on creation calls there is nothing to be missing,
// so it stays a provider error.
func normalizeErr(resource, id string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		missing := stripeErr.HTTPStatusCode == http.StatusNotFound || stripeErr.Code == stripe.ErrorCodeResourceMissing
		if missing && id != "" {
			return &apperrors.ErrNotFound{Resource: resource, ID: id}
		}
		return &apperrors.ErrProvider{Code: string(stripeErr.Code), Message: stripeErr.Msg}
	}
	return &apperrors.ErrProvider{Message: err.Error()}
}

func lineItemParams(items []domain.LineItem, currency string) []*stripe.CheckoutSessionLineItemParams {
	out := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, li := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.Description != "" {
			productData.Description = stripe.String(li.Description)
		}
		out = append(out, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(li.UnitAmount),
				ProductData: productData,
			},
		})
	}
	return out
}

func sessionFromStripe(s *stripe.CheckoutSession) *domain.CheckoutSession {
	out := &domain.CheckoutSession{
		ID:            s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		ClientSecret:  s.ClientSecret,
		URL:           s.URL,
		AmountTotal:   s.AmountTotal,
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
		out.PaymentIntentStatus = string(s.PaymentIntent.Status)
	}
	return out
}
