package store

import (
	"context"
	"fmt"

	"github.com/financellm/financellm/internal/model"
)

// AddRule creates a budget rule and returns it with its ID.
func (s *Store) AddRule(ctx context.Context, pattern, category string) (model.BudgetRule, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO budget_rules (pattern, category) VALUES (?, ?)", pattern, category)
	if err != nil {
		return model.BudgetRule{}, fmt.Errorf("AddRule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.BudgetRule{}, fmt.Errorf("AddRule: LastInsertId failed: %w", err)
	}
	return model.BudgetRule{ID: id, Pattern: pattern, Category: category}, nil
}

// AddRules creates several rules in one transaction.
func (s *Store) AddRules(ctx context.Context, rules []model.BudgetRule) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AddRules: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, r := range rules {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO budget_rules (pattern, category) VALUES (?, ?)", r.Pattern, r.Category); err != nil {
			return fmt.Errorf("AddRules: rule %d: %w", i+1, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("AddRules: commit: %w", err)
	}
	return nil
}

// ListRules returns all rules in creation order.
func (s *Store) ListRules(ctx context.Context) ([]model.BudgetRule, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, pattern, category FROM budget_rules ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("ListRules: %w", err)
	}
	defer rows.Close()

	var rules []model.BudgetRule
	for rows.Next() {
		var r model.BudgetRule
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Category); err != nil {
			return nil, fmt.Errorf("ListRules: scan error: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRules: rows iteration error: %w", err)
	}
	return rules, nil
}
