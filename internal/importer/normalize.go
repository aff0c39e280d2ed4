package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financellm/financellm/internal/model"
)

// DateFormats are tried in order; the first that parses wins. Month-first
// slash dates are preferred over day-first ones.
var DateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	"2/1/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
}

var errMissingDateColumn = errors.New("no date column")

// Row is one normalized record with the canonical columns.
type Row struct {
	Date        time.Time
	Description *string
	Amount      decimal.Decimal
	Category    *string
	Account     *string
}

// Transaction turns the row into a Transaction ready for rule application.
// A null description becomes "" and a null account falls back to
// accountHint, when one is given.
func (r Row) Transaction(accountHint string) model.Transaction {
	tx := model.Transaction{
		Date:     r.Date,
		Category: r.Category,
		Amount:   r.Amount,
		Account:  r.Account,
	}
	if r.Description != nil {
		tx.Description = *r.Description
	}
	if tx.Account == nil && accountHint != "" {
		hint := accountHint
		tx.Account = &hint
	}
	return tx
}

// Normalized is a table coerced to the canonical schema.
type Normalized struct {
	Rows []Row
	// DefaultedAmounts counts amount cells that failed to parse and became 0.
	DefaultedAmounts int
}

// Columns returns the canonical column names, in order.
func (n *Normalized) Columns() []string {
	return CanonicalColumns
}

// Normalize coerces a mapped table to the canonical schema. Extra columns
// are dropped and missing ones are null. An unparsable date fails the whole
// table; an unparsable amount becomes 0.
func Normalize(t *Table) (*Normalized, error) {
	idxDate := t.Index(ColDate)
	idxDesc := t.Index(ColDescription)
	idxAmount := t.Index(ColAmount)
	idxCategory := t.Index(ColCategory)
	idxAccount := t.Index(ColAccount)

	if idxDate < 0 && len(t.Rows) > 0 {
		return nil, &ParseError{Column: ColDate, Err: errMissingDateColumn}
	}

	n := &Normalized{Rows: make([]Row, 0, len(t.Rows))}
	for i, rec := range t.Rows {
		date, err := ParseDate(rec[idxDate])
		if err != nil {
			return nil, &ParseError{Row: i + 2, Column: ColDate, Value: rec[idxDate], Err: err}
		}

		var amount decimal.Decimal
		if idxAmount >= 0 {
			var ok bool
			amount, ok = ParseAmount(rec[idxAmount])
			if !ok {
				n.DefaultedAmounts++
			}
		}

		n.Rows = append(n.Rows, Row{
			Date:        date,
			Description: cell(rec, idxDesc),
			Amount:      amount,
			Category:    cell(rec, idxCategory),
			Account:     cell(rec, idxAccount),
		})
	}
	return n, nil
}

// ParseDate parses s with the first matching entry of DateFormats and
// truncates it to a calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range DateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

// Amount bounds. Exponent notation ("1e400") can otherwise describe values
// far larger than the cell that holds them.
const (
	maxAmountIntDigits = 15
	maxAmountScale     = 10
)

// ParseAmount parses s as a signed decimal. Anything unparsable, or outside
// 15 integer digits and 10 fractional digits, yields zero and false.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	exp := int64(d.Exponent())
	if exp < -maxAmountScale || int64(d.NumDigits())+exp > maxAmountIntDigits {
		return decimal.Zero, false
	}
	return d, true
}

func cell(rec []string, idx int) *string {
	if idx < 0 || rec[idx] == "" {
		return nil
	}
	v := rec[idx]
	return &v
}
