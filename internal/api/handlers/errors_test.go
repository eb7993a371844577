package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/truong-kyle/ht6/pkg/errors"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/create-checkout-session", nil)

	respondError(c, zap.NewNop(), err)
	return w
}

// Service errors keep their status even when wrapped along the way.
func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &errors.ErrValidation{Message: "invalid cart"}, http.StatusBadRequest},
		{"not found", &errors.ErrNotFound{Resource: "checkout session", ID: "cs_1"}, http.StatusNotFound},
		{"provider", &errors.ErrProvider{Code: "api_error", Message: "unavailable"}, http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("create session: %w", &errors.ErrValidation{Message: "invalid cart"}), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("status lookup: %w", &errors.ErrNotFound{Resource: "checkout session", ID: "cs_1"}), http.StatusNotFound},
		{"wrapped provider", fmt.Errorf("create intent: %w", &errors.ErrProvider{Message: "unavailable"}), http.StatusInternalServerError},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := respond(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRespondError_UnknownErrorHidesDetails(t *testing.T) {
	w := respond(t, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
