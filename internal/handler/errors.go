package handler

import (
	"errors"
	"net/http"

	"gymref/internal/domain"

	"github.com/gin-gonic/gin"
)

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
}

// respondError writes err as JSON. Unclassified errors are attached to the
// context for the request logger and answered with a bare 500.
func respondError(c *gin.Context, err error) {
	var de *domain.DomainError
	if status, ok := kindStatus[domain.KindOf(err)]; ok && errors.As(err, &de) {
		body := gin.H{"error": de.Message, "code": de.Code}
		if len(de.Issues) > 0 {
			body["issues"] = de.Issues
		}
		c.AbortWithStatusJSON(status, body)
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// bindJSON decodes the body into req and reports a validation error on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, domain.NewValidationError(err))
		return false
	}
	return true
}
