package models

import "github.com/shopspring/decimal"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Signed returns amount with the sign implied by the type: expenses are
// negative, income is positive.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Transaction is a single dated income or expense entry. Rows are created
// and deleted, never updated.
type Transaction struct {
	Base        `yaml:",inline"`
	Date        string          `gorm:"type:text;not null;index" json:"date" yaml:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount" yaml:"amount"`
	Category    string          `gorm:"type:text;not null;index" json:"category" yaml:"category"`
	Description string          `gorm:"type:text;not null" json:"description" yaml:"description"`
	Type        TransactionType `gorm:"type:text;not null" json:"type" yaml:"type"`
}
