package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/middleware"
)

// ErrorDetail is the body of an error response.
type ErrorDetail struct {
	Code    string `json:"code" example:"INVALID_INPUT"`
	Message string `json:"message" example:"Invalid input"`
}

// ErrorResponse wraps every error returned by the API.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// DeletedResponse reports whether a delete removed a row.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// pathCategory returns the trimmed :category path parameter.
func pathCategory(c *gin.Context) (string, error) {
	category := strings.TrimSpace(c.Param("category"))
	if category == "" {
		return "", apperrors.ErrEmptyCategory
	}
	return category, nil
}

// bindError converts a gin binding failure into an INVALID_INPUT error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status, code and message; anything else becomes a logged generic
// internal error.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
