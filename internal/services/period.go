package services

import (
	"regexp"
	"time"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

var (
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// monthRange returns the half-open date range [first day, first day of the
// next month) for a YYYY-MM label.
func monthRange(month string) (start, end string, err error) {
	if !monthPattern.MatchString(month) {
		return "", "", apperrors.ErrInvalidMonth
	}
	first, err := time.Parse(models.MonthLayout, month)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrInvalidMonth, err)
	}
	return first.Format(models.DateLayout), first.AddDate(0, 1, 0).Format(models.DateLayout), nil
}

// yearRange returns [YYYY-01-01, (YYYY+1)-01-01).
func yearRange(year string) (start, end string, err error) {
	if !yearPattern.MatchString(year) {
		return "", "", apperrors.ErrInvalidYear
	}
	first, err := time.Parse(models.YearLayout, year)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrInvalidYear, err)
	}
	return first.Format(models.DateLayout), first.AddDate(1, 0, 0).Format(models.DateLayout), nil
}

// validateDate checks that date is a real calendar day in YYYY-MM-DD form.
func validateDate(date string) error {
	if !datePattern.MatchString(date) {
		return apperrors.ErrInvalidDate
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidDate, err)
	}
	return nil
}
