package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financellm/financellm/internal/model"
)

// InsertTransactions stores txns in a single database transaction. Either
// every row is committed or none is.
func (s *Store) InsertTransactions(ctx context.Context, txns []model.Transaction) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("InsertTransactions: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (date, description, category, amount, account, raw)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("InsertTransactions: prepare: %w", err)
	}
	defer stmt.Close()

	for i, t := range txns {
		if _, err = stmt.ExecContext(ctx,
			t.Date.Format(dateFormat),
			t.Description,
			t.Category,
			t.Amount.String(),
			t.Account,
			t.Raw,
		); err != nil {
			return fmt.Errorf("InsertTransactions: row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("InsertTransactions: commit: %w", err)
	}
	return nil
}

// ListTransactions returns up to limit transactions, newest date first.
func (s *Store) ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, category, amount, account, raw
		FROM transactions
		ORDER BY date DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactions: rows iteration error: %w", err)
	}
	return txns, nil
}

// CountTransactions returns the number of stored transactions.
func (s *Store) CountTransactions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n); err != nil {
		return 0, fmt.Errorf("CountTransactions: %w", err)
	}
	return n, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		t                      model.Transaction
		date, amount           string
		category, account, raw sql.NullString
	)
	if err := rows.Scan(&t.ID, &date, &t.Description, &category, &amount, &account, &raw); err != nil {
		return t, fmt.Errorf("scan error: %w", err)
	}

	d, err := time.Parse(dateFormat, date)
	if err != nil {
		return t, fmt.Errorf("transaction %d: parsing date %q: %w", t.ID, date, err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return t, fmt.Errorf("transaction %d: parsing amount %q: %w", t.ID, amount, err)
	}

	t.Date = d
	t.Amount = a
	t.Category = nullString(category)
	t.Account = nullString(account)
	t.Raw = nullString(raw)
	return t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
