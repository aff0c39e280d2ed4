package importer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/financellm/financellm/internal/model"
	"github.com/financellm/financellm/internal/rules"
)

// Store is the persistence the ingestion pipeline needs.
type Store interface {
	// ListRules returns every budget rule in creation order.
	ListRules(ctx context.Context) ([]model.BudgetRule, error)
	// InsertTransactions persists txns in a single transaction: all or none.
	InsertTransactions(ctx context.Context, txns []model.Transaction) error
}

// Service runs CSV blobs through layout mapping, normalization and rule
// categorization, then persists the result.
type Service struct {
	store   Store
	layouts Layouts
	log     zerolog.Logger
}

// NewService creates an ingestion Service using the built-in layouts.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, layouts: DefaultLayouts(), log: log}
}

// WithLayouts returns a copy of s that matches against layouts instead.
func (s *Service) WithLayouts(layouts Layouts) *Service {
	cp := *s
	cp.layouts = layouts
	return &cp
}

// Ingest parses blob as CSV, categorizes every row and stores the batch
// atomically. accountHint, when non-empty, fills rows without an account.
// It returns the number of transactions stored. Failures are *ParseError or
// *PersistenceError, and leave storage untouched.
func (s *Service) Ingest(ctx context.Context, blob []byte, accountHint string) (int, error) {
	log := s.log.With().Str("batch_id", uuid.NewString()).Logger()

	table, err := ReadTable(blob)
	if err != nil {
		return 0, err
	}

	mapped, layout := s.layouts.Map(table)
	if layout == "" {
		log.Debug().Strs("columns", table.Columns).Msg("No known layout matched, using columns as-is")
	}

	norm, err := Normalize(mapped)
	if err != nil {
		return 0, err
	}
	if norm.DefaultedAmounts > 0 {
		log.Warn().Int("count", norm.DefaultedAmounts).Msg("Unparsable amounts defaulted to 0")
	}
	if len(norm.Rows) == 0 {
		log.Info().Str("layout", layout).Msg("No data rows to ingest")
		return 0, nil
	}

	ruleRows, err := s.store.ListRules(ctx)
	if err != nil {
		return 0, &PersistenceError{Op: "listing rules", Err: err}
	}
	ruleSet := rules.NewRuleSet(ruleRows)

	txns := make([]model.Transaction, 0, len(norm.Rows))
	categorized := 0
	for _, row := range norm.Rows {
		tx := ruleSet.Apply(row.Transaction(accountHint))
		if tx.Category != nil {
			categorized++
		}
		txns = append(txns, tx)
	}

	if err := s.store.InsertTransactions(ctx, txns); err != nil {
		return 0, &PersistenceError{Op: "inserting transactions", Err: err}
	}

	log.Info().
		Str("layout", layout).
		Int("inserted", len(txns)).
		Int("categorized", categorized).
		Int("rules", ruleSet.Len()).
		Msg("Ingested CSV")
	return len(txns), nil
}
