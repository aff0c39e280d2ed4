package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/financellm/financellm/internal/ask"
	"github.com/financellm/financellm/internal/importer"
	"github.com/financellm/financellm/internal/logger"
	"github.com/financellm/financellm/internal/model"
)

// Store is the read/write surface the handlers need.
type Store interface {
	AddRule(ctx context.Context, pattern, category string) (model.BudgetRule, error)
	ListRules(ctx context.Context) ([]model.BudgetRule, error)
	ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	MonthlyNet(ctx context.Context, year int) ([]model.MonthNet, error)
	CategoryNet(ctx context.Context, month string) ([]model.CategoryNet, error)
}

// Ingester stores a CSV blob.
type Ingester interface {
	Ingest(ctx context.Context, blob []byte, accountHint string) (int, error)
}

// Asker answers a free-form question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Handler serves the financellm HTTP API.
type Handler struct {
	store     Store
	ingester  Ingester
	asker     Asker
	maxUpload int64
}

type ruleRequest struct {
	Pattern  string `json:"pattern" binding:"required,notblank"`
	Category string `json:"category" binding:"required,notblank"`
}

type askRequest struct {
	Question string `json:"question" binding:"required,notblank"`
}

type monthlyQuery struct {
	Year int `form:"year" binding:"omitempty,min=1000,max=9999"`
}

type categoryQuery struct {
	Month string `form:"month" binding:"omitempty,yearmonth"`
}

type transactionsQuery struct {
	Limit int `form:"limit,default=200" binding:"min=1,max=10000"`
}

type transactionJSON struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    *string `json:"category"`
	Amount      float64 `json:"amount"`
	Account     *string `json:"account"`
	Raw         *string `json:"raw"`
}

type monthJSON struct {
	Month string  `json:"month"`
	Net   float64 `json:"net"`
}

type categoryJSON struct {
	Category string  `json:"category"`
	Net      float64 `json:"net"`
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AddRule handles POST /rules
func (h *Handler) AddRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pattern and category are required"})
		return
	}

	rule, err := h.store.AddRule(c.Request.Context(), req.Pattern, req.Category)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to add rule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// ListRules handles GET /rules
func (h *Handler) ListRules(c *gin.Context) {
	rules, err := h.store.ListRules(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to list rules")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rules"})
		return
	}
	if rules == nil {
		rules = []model.BudgetRule{}
	}
	c.JSON(http.StatusOK, rules)
}

// MonthlySummary handles GET /summary/monthly?year=YYYY
func (h *Handler) MonthlySummary(c *gin.Context) {
	var q monthlyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a four-digit number"})
		return
	}

	months, err := h.store.MonthlyNet(c.Request.Context(), q.Year)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to build monthly summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	out := make([]monthJSON, 0, len(months))
	for _, m := range months {
		out = append(out, monthJSON{Month: m.Month, Net: m.Net.InexactFloat64()})
	}
	c.JSON(http.StatusOK, out)
}

// CategorySummary handles GET /summary/by_category?month=YYYY-MM
func (h *Handler) CategorySummary(c *gin.Context) {
	var q categoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must look like YYYY-MM"})
		return
	}

	cats, err := h.store.CategoryNet(c.Request.Context(), q.Month)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to build category summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	out := make([]categoryJSON, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryJSON{Category: cat.Category, Net: cat.Net.InexactFloat64()})
	}
	c.JSON(http.StatusOK, out)
}

// ListTransactions handles GET /transactions?limit=N
func (h *Handler) ListTransactions(c *gin.Context) {
	var q transactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 10000"})
		return
	}

	txns, err := h.store.ListTransactions(c.Request.Context(), q.Limit)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to list transactions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	out := make([]transactionJSON, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionJSON{
			ID:          t.ID,
			Date:        t.Date.Format("2006-01-02"),
			Description: t.Description,
			Category:    t.Category,
			Amount:      t.Amount.InexactFloat64(),
			Account:     t.Account,
			Raw:         t.Raw,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Ingest handles POST /ingest (multipart "file", optional "account")
func (h *Handler) Ingest(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload a CSV file"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload a CSV file"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer f.Close()

	blob, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}

	account := c.PostForm("account")
	if account == "" {
		account = c.Query("account")
	}

	n, err := h.ingester.Ingest(c.Request.Context(), blob, account)
	if err != nil {
		var perr *importer.ParseError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Str("file", fh.Filename).Msg("Ingest failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"inserted": n})
}

// Ask handles POST /ask
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	answer, err := h.asker.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, ask.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("Ask failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "LLM bridge error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
