package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/internal/service"
)

// SessionStatusResponse is returned by GET /session-status. Optional fields
// are omitted rather than returned as null so an unknown session can never
// masquerade as a 200 with empty state.
type SessionStatusResponse struct {
	Status              string `json:"status"`
	PaymentStatus       string `json:"paymentStatus,omitempty"`
	CustomerEmail       string `json:"customerEmail,omitempty"`
	PaymentIntentID     string `json:"paymentIntentId,omitempty"`
	PaymentIntentStatus string `json:"paymentIntentStatus,omitempty"`
}

// HandleSessionStatus handles GET /session-status?sessionId=
func HandleSessionStatus(svc *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.SessionStatus(c.Request.Context(), c.Query("sessionId"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, SessionStatusResponse{
			Status:              sess.Status,
			PaymentStatus:       sess.PaymentStatus,
			CustomerEmail:       sess.CustomerEmail,
			PaymentIntentID:     sess.PaymentIntentID,
			PaymentIntentStatus: sess.PaymentIntentStatus,
		})
	}
}
