// Package ask answers natural-language questions about stored transactions
// using a language model.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/financellm/financellm/internal/model"
)

// recentCount is how many latest transactions go into the prompt.
const recentCount = 5

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("question is empty")

// Source provides the figures quoted to the model.
type Source interface {
	TotalNet(ctx context.Context) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
}

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service builds a grounded prompt and asks the model.
type Service struct {
	source Source
	llm    Completer
}

// NewService creates an ask Service.
func NewService(source Source, llm Completer) *Service {
	return &Service{source: source, llm: llm}
}

// Ask answers question using only the stored totals and latest transactions
// as context.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	total, err := s.source.TotalNet(ctx)
	if err != nil {
		return "", fmt.Errorf("loading total: %w", err)
	}
	latest, err := s.source.ListTransactions(ctx, recentCount)
	if err != nil {
		return "", fmt.Errorf("loading latest transactions: %w", err)
	}

	answer, err := s.llm.Complete(ctx, BuildPrompt(question, total, latest))
	if err != nil {
		return "", fmt.Errorf("asking model: %w", err)
	}
	return answer, nil
}

// BuildPrompt renders the instruction, context block and question.
func BuildPrompt(question string, total decimal.Decimal, latest []model.Transaction) string {
	var b strings.Builder
	b.WriteString("You are a cautious finance assistant. Use ONLY the provided context to answer. ")
	b.WriteString("If the answer isn't derivable, say what else you need.\n\n")
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "Total net: %s\n", total.StringFixed(2))
	b.WriteString("Latest 5 transactions:\n")
	for _, t := range latest {
		category := "uncat"
		if t.Category != nil {
			category = *t.Category
		}
		fmt.Fprintf(&b, " - %s %s %s [%s]\n",
			t.Date.Format("2006-01-02"), t.Description, t.Amount.StringFixed(2), category)
	}
	fmt.Fprintf(&b, "\nUser: %s\n", question)
	return b.String()
}
