package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a persisted, normalized bank or card movement.
type Transaction struct {
	ID          int64
	Date        time.Time       // calendar date, UTC midnight
	Description string          // never null; empty when the source had none
	Category    *string         // set by rules or the source file
	Amount      decimal.Decimal // negative = expense, positive = income
	Account     *string
	Raw         *string // reserved, always nil
}

// BudgetRule assigns Category to transactions whose description contains Pattern
// (case-insensitive).
type BudgetRule struct {
	ID       int64  `json:"id"`
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

// MonthNet is the net amount for one "YYYY-MM" month.
type MonthNet struct {
	Month string
	Net   decimal.Decimal
}

// CategoryNet is the net amount for one category.
type CategoryNet struct {
	Category string
	Net      decimal.Decimal
}

// Uncategorized labels transactions without a category in summaries.
const Uncategorized = "(uncategorized)"
