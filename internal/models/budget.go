package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the monthly spending limit for a category. The same limit
// applies to every month; there is one row per category.
type Budget struct {
	Category     string          `gorm:"type:text;primaryKey" json:"category" yaml:"category"`
	MonthlyLimit decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"monthly_limit" yaml:"monthly_limit"`
	UpdatedAt    time.Time       `json:"updated_at" yaml:"updated_at"`
}
