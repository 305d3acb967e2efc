package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidationError carries every violation found in a request, accumulated
// rather than failing on the first one.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation errors: " + strings.Join(e.Errors, "; ")
}

// NewValidationError wraps a list of violation messages.
func NewValidationError(errs ...string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ConflictError signals that a write lost to a uniqueness constraint: a taken
// seat, a second approved permit on a bus, or a duplicate unique field.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UnauthorizedError signals a failed credential or token check.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NotFoundError signals that a referenced id did not resolve to a record.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found." }

// RespondWithError translates a domain error into the HTTP response the
// original API contract defines: validation and conflict failures are 400
// with all messages enumerated, missing records are 404, everything else is
// a server error.
func RespondWithError(c *gin.Context, err error) {
	var (
		ve *ValidationError
		ce *ConflictError
		ue *UnauthorizedError
		ne *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation errors.", Errors: ve.Errors})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: ce.Message, Errors: []string{ce.Message}})
	case errors.As(err, &ue):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: ue.Message})
	case errors.As(err, &ne):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: ne.Error()})
	default:
		GetLogger().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Server error.", Errors: []string{err.Error()}})
	}
}
