// Package errors provides the structured error type shared by the ledger,
// the services and both presentation layers. Every service-layer failure is
// an *AppError so the API and the CLI can report it consistently without
// leaking storage details.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Resolve returns the AppError to show a client for err. Errors that are not
// AppErrors resolve to ErrInternalServer; ok is false in that case.
func Resolve(err error) (appErr *AppError, ok bool) {
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return ErrInternalServer, false
}

// IsValidation reports whether err is a caller input error rather than a
// storage or server failure.
func IsValidation(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.StatusCode == http.StatusBadRequest
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrStorage        = &AppError{Code: "STORAGE_ERROR", Message: "The ledger store failed", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Period and date errors.
var (
	ErrInvalidDate  = &AppError{Code: "INVALID_DATE", Message: "Date must be in YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
	ErrFutureDate   = &AppError{Code: "FUTURE_DATE", Message: "Date cannot be in the future", StatusCode: http.StatusBadRequest}
	ErrInvalidMonth = &AppError{Code: "INVALID_MONTH", Message: "Month must be in YYYY-MM format", StatusCode: http.StatusBadRequest}
	ErrInvalidYear  = &AppError{Code: "INVALID_YEAR", Message: "Year must be a four digit number", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be income or expense", StatusCode: http.StatusBadRequest}
	ErrEmptyCategory          = &AppError{Code: "EMPTY_CATEGORY", Message: "Category cannot be empty", StatusCode: http.StatusBadRequest}
	ErrZeroAmount             = &AppError{Code: "ZERO_AMOUNT", Message: "Amount cannot be zero", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound     = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrInvalidBudgetLimit = &AppError{Code: "INVALID_BUDGET_LIMIT", Message: "Budget limit must be positive", StatusCode: http.StatusBadRequest}
)

// Export errors.
var (
	ErrInvalidExportFormat = &AppError{Code: "INVALID_EXPORT_FORMAT", Message: "Export format must be csv or xlsx", StatusCode: http.StatusBadRequest}
)
