// Package api exposes ingestion, rules, summaries and the LLM bridge over
// HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps wires the router to the rest of the application.
type Deps struct {
	Store          Store
	Ingester       Ingester
	Asker          Asker
	Log            zerolog.Logger
	MaxUploadBytes int64
}

// NewHandler creates the HTTP handlers.
func NewHandler(d Deps) *Handler {
	return &Handler{
		store:     d.Store,
		ingester:  d.Ingester,
		asker:     d.Asker,
		maxUpload: d.MaxUploadBytes,
	}
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	registerValidations()

	h := NewHandler(d)

	router := gin.New()
	router.Use(RequestID(), Logger(d.Log), gin.Recovery(), CORS())

	router.GET("/health", h.Health)

	router.GET("/rules", h.ListRules)
	router.POST("/rules", h.AddRule)

	router.GET("/summary/monthly", h.MonthlySummary)
	router.GET("/summary/by_category", h.CategorySummary)

	router.GET("/transactions", h.ListTransactions)
	router.POST("/ingest", h.Ingest)
	router.POST("/ask", h.Ask)

	return router
}
