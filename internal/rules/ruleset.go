// Package rules implements substring-based auto-categorization.
package rules

import (
	"strings"

	"github.com/financellm/financellm/internal/model"
)

// RuleSet is an immutable snapshot of budget rules, in application order.
// It is read once per ingestion and shared by every row of the batch.
type RuleSet struct {
	rules    []model.BudgetRule
	patterns []string // lower-cased patterns, parallel to rules
}

// NewRuleSet snapshots rules in the given order.
func NewRuleSet(rules []model.BudgetRule) RuleSet {
	rs := RuleSet{
		rules:    make([]model.BudgetRule, len(rules)),
		patterns: make([]string, len(rules)),
	}
	copy(rs.rules, rules)
	for i, r := range rules {
		rs.patterns[i] = strings.ToLower(r.Pattern)
	}
	return rs
}

// Len returns the number of rules in the snapshot.
func (rs RuleSet) Len() int { return len(rs.rules) }

// Rules returns a copy of the snapshot's rules.
func (rs RuleSet) Rules() []model.BudgetRule {
	out := make([]model.BudgetRule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Match returns the first rule whose pattern occurs in description,
// ignoring case.
func (rs RuleSet) Match(description string) (model.BudgetRule, bool) {
	desc := strings.ToLower(description)
	for i, p := range rs.patterns {
		if strings.Contains(desc, p) {
			return rs.rules[i], true
		}
	}
	return model.BudgetRule{}, false
}

// Apply sets tx's category from the first matching rule, replacing any
// category the source file supplied. Without a match tx is returned as is.
func (rs RuleSet) Apply(tx model.Transaction) model.Transaction {
	r, ok := rs.Match(tx.Description)
	if !ok {
		return tx
	}
	category := r.Category
	tx.Category = &category
	return tx
}
