package models

import "time"

// Base contains the columns shared by append-only tables. IDs are assigned
// by the database and never reused.
type Base struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Date layouts used across the ledger. Dates are stored as text so that
// lexicographic order equals chronological order.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)
