package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymref/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		body   string
	}{
		{err: domain.ErrForbidden, status: http.StatusForbidden, body: `"code":"FORBIDDEN"`},
		{err: fmt.Errorf("verify: %w", domain.ErrAlreadyVerified), status: http.StatusConflict, body: `"code":"ALREADY_VERIFIED"`},
		{err: domain.ErrNoActiveCampaign, status: http.StatusNotFound, body: `"error":"no active campaign found"`},
		{err: domain.ErrInvalidCredentials, status: http.StatusUnauthorized, body: `"code":"INVALID_CREDENTIALS"`},
		{err: domain.NewValidationError(errors.New("unexpected EOF")), status: http.StatusBadRequest, body: `"rule":"decode"`},
		{err: errors.New("connection refused"), status: http.StatusInternalServerError, body: `{"error":"internal server error"}`},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
