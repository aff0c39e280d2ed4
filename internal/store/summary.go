package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/financellm/financellm/internal/model"
	"github.com/financellm/financellm/internal/period"
)

// MonthlyNet returns the net amount per "YYYY-MM" month in ascending order.
// A zero year means all years.
func (s *Store) MonthlyNet(ctx context.Context, year int) ([]model.MonthNet, error) {
	query := "SELECT substr(date, 1, 7) AS month, amount FROM transactions"
	var args []any
	if year != 0 {
		query += " WHERE substr(date, 1, 4) = ?"
		args = append(args, period.Year(year))
	}
	query += " ORDER BY month ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("MonthlyNet: %w", err)
	}
	defer rows.Close()

	var out []model.MonthNet
	for rows.Next() {
		var month, amount string
		if err := rows.Scan(&month, &amount); err != nil {
			return nil, fmt.Errorf("MonthlyNet: scan error: %w", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("MonthlyNet: parsing amount %q: %w", amount, err)
		}
		if n := len(out); n > 0 && out[n-1].Month == month {
			out[n-1].Net = out[n-1].Net.Add(a)
			continue
		}
		out = append(out, model.MonthNet{Month: month, Net: a})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MonthlyNet: rows iteration error: %w", err)
	}
	return out, nil
}

// CategoryNet returns the net amount per category, uncategorized first and
// the rest by name. An empty month ("YYYY-MM") means all months.
func (s *Store) CategoryNet(ctx context.Context, month string) ([]model.CategoryNet, error) {
	query := "SELECT category, amount FROM transactions"
	var args []any
	if month != "" {
		query += " WHERE substr(date, 1, 7) = ?"
		args = append(args, month)
	}
	query += " ORDER BY category ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CategoryNet: %w", err)
	}
	defer rows.Close()

	var (
		out  []model.CategoryNet
		last sql.NullString
	)
	for rows.Next() {
		var (
			category sql.NullString
			amount   string
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("CategoryNet: scan error: %w", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("CategoryNet: parsing amount %q: %w", amount, err)
		}
		if len(out) > 0 && category == last {
			out[len(out)-1].Net = out[len(out)-1].Net.Add(a)
			continue
		}
		name := model.Uncategorized
		if category.Valid {
			name = category.String
		}
		out = append(out, model.CategoryNet{Category: name, Net: a})
		last = category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CategoryNet: rows iteration error: %w", err)
	}
	return out, nil
}

// TotalNet returns the sum of all stored amounts.
func (s *Store) TotalNet(ctx context.Context) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT amount FROM transactions")
	if err != nil {
		return decimal.Zero, fmt.Errorf("TotalNet: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("TotalNet: scan error: %w", err)
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("TotalNet: parsing amount %q: %w", amount, err)
		}
		total = total.Add(a)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("TotalNet: rows iteration error: %w", err)
	}
	return total, nil
}
