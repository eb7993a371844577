package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/api/middleware"
	"github.com/truong-kyle/ht6/internal/domain"
	"github.com/truong-kyle/ht6/internal/service"
	"github.com/truong-kyle/ht6/pkg/errors"
)

// CartRequest is the shared payload for both creation endpoints. Prices and
// fee amounts are major-unit decimals; uiMode and customerEmail only apply to
// checkout sessions.
type CartRequest struct {
	Items         []ItemPayload              `json:"items"`
	Fees          map[string]decimal.Decimal `json:"fees"`
	UIMode        string                     `json:"uiMode"`
	CustomerEmail string                     `json:"customerEmail"`
}

type ItemPayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    int              `json:"quantity"`
}

// CheckoutSessionResponse is returned by POST /create-checkout-session.
// Embedded sessions carry a client secret; hosted sessions carry a URL.
type CheckoutSessionResponse struct {
	ClientSecret string `json:"clientSecret,omitempty"`
	SessionID    string `json:"sessionId"`
	URL          string `json:"url,omitempty"`
}

// PaymentIntentResponse is returned by POST /create-payment-intent
type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (r *CartRequest) toCart() domain.Cart {
	cart := domain.Cart{
		Items: make([]domain.Item, 0, len(r.Items)),
		Fees:  domain.FeeSet(r.Fees),
	}
	for _, item := range r.Items {
		cart.Items = append(cart.Items, domain.Item{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return cart
}

// HandleCreateCheckoutSession handles POST /create-checkout-session
func HandleCreateCheckoutSession(svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		sess, err := svc.CreateSession(
			c.Request.Context(),
			req.toCart(),
			domain.UIMode(req.UIMode),
			req.CustomerEmail,
			middleware.GetIdempotencyKey(c),
		)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutSessionResponse{
			ClientSecret: sess.ClientSecret,
			SessionID:    sess.ID,
			URL:          sess.URL,
		})
	}
}

// HandleCreatePaymentIntent handles POST /create-payment-intent
func HandleCreatePaymentIntent(svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		intent, err := svc.CreateIntent(c.Request.Context(), req.toCart(), middleware.GetIdempotencyKey(c))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, PaymentIntentResponse{
			ClientSecret:    intent.ClientSecret,
			PaymentIntentID: intent.ID,
		})
	}
}

// respondError maps the service error taxonomy onto HTTP statuses, unwrapping
// as needed so a wrapped validation or not-found error keeps its status.
// Provider messages pass through for diagnostics; they never include the
// secret key.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *errors.ErrValidation
	var notFoundErr *errors.ErrNotFound
	var providerErr *errors.ErrProvider

	switch {
	case stderrors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Error(),
			"details": validationErr.Fields,
		})
	case stderrors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case stderrors.As(err, &providerErr):
		logger.Error("Provider call failed",
			zap.String("code", providerErr.Code),
			zap.String("message", providerErr.Message),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": providerErr.Message})
	default:
		logger.Error("Unexpected error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
