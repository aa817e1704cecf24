package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/models"
	"tally/internal/selectors"
	"tally/internal/store"
)

// StatsHandler serves aggregate statistics over the cached transactions.
type StatsHandler struct {
	store *store.Store
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(s *store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

// GetStatistics returns totals, per-category expense ranking, and the daily
// time series for a granularity anchored at a date. Both query parameters
// default to the store's current selection.
func (h *StatsHandler) GetStatistics(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}
	snap := h.store.Snapshot()

	dateRange := snap.DateRange
	if r := c.Query("range"); r != "" {
		dateRange = models.DateRange(r)
	}
	date := snap.CurrentDate
	if d := c.Query("date"); d != "" {
		date = d
	}

	span, err := selectors.Range(dateRange, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	inRange := selectors.BetweenDates(snap.Transactions, span)
	daily, err := selectors.DailySeries(inRange, span)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"range":      span,
		"statistics": selectors.Compute(inRange, snap.Categories),
		"daily":      daily,
	})
}
