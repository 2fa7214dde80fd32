// Package validator holds the input checks shared by the HTTP binding engine
// and the command line. They run before the services see a request.
package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	yearRegex  = regexp.MustCompile(`^\d{4}$`)
)

// Now is the clock used by the future-date check.
var Now = time.Now

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("not_future", validateNotFuture)
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("year", validateYear)
	}
}

// IsISODate reports whether s is a real calendar day in YYYY-MM-DD form.
func IsISODate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// IsMonth reports whether s is a YYYY-MM label.
func IsMonth(s string) bool {
	return monthRegex.MatchString(s)
}

// IsYear reports whether s is a four digit year.
func IsYear(s string) bool {
	return yearRegex.MatchString(s)
}

// NotFuture reports whether the YYYY-MM-DD date is on or before today.
func NotFuture(date string) bool {
	return date <= Now().Format(models.DateLayout)
}

// CheckEntry applies the entry-form rules to a new transaction: a valid
// date that is not in the future, a non-zero amount and a category.
func CheckEntry(date string, amount decimal.Decimal, category string) error {
	if !IsISODate(date) {
		return apperrors.ErrInvalidDate
	}
	if !NotFuture(date) {
		return apperrors.ErrFutureDate
	}
	if amount.IsZero() {
		return apperrors.ErrZeroAmount
	}
	if strings.TrimSpace(category) == "" {
		return apperrors.ErrEmptyCategory
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).IsValid()
}

func validateISODate(fl validator.FieldLevel) bool {
	return IsISODate(fl.Field().String())
}

func validateNotFuture(fl validator.FieldLevel) bool {
	return NotFuture(fl.Field().String())
}

func validateMonth(fl validator.FieldLevel) bool {
	return IsMonth(fl.Field().String())
}

func validateYear(fl validator.FieldLevel) bool {
	return IsYear(fl.Field().String())
}
