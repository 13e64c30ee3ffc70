package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/service/report"
)

// StatsHandler serves the read-only aggregation endpoints. Every endpoint
// accepts the same ?search= filter the product list does.
type StatsHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewStatsHandler constructs the HTTP handler adapter.
func NewStatsHandler(svc *report.Service, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

// Summary returns the headline product, quantity and value totals.
func (h *StatsHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("failed computing summary", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute summary"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Categories returns per-category quantity and value totals.
func (h *StatsHandler) Categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("failed computing category totals", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute category totals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// TopProducts returns the ?n= most valuable rows.
func (h *StatsHandler) TopProducts(c *gin.Context) {
	n, ok := intQuery(c, "n")
	if !ok {
		return
	}

	rows, err := h.svc.TopProducts(c.Request.Context(), c.Query("search"), n)
	if err != nil {
		h.logger.Error("failed computing top products", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute top products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": rows})
}

// LowStock returns rows at or below ?threshold=, scarcest first, capped at
// ?limit=.
func (h *StatsHandler) LowStock(c *gin.Context) {
	threshold, ok := intQuery(c, "threshold")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}

	rows, err := h.svc.LowStock(c.Request.Context(), c.Query("search"), threshold, limit)
	if err != nil {
		h.logger.Error("failed computing low stock", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute low stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": rows})
}

// PriceHistogram returns price counts across ?bins= equal-width buckets.
func (h *StatsHandler) PriceHistogram(c *gin.Context) {
	bins, ok := intQuery(c, "bins")
	if !ok {
		return
	}

	buckets, err := h.svc.PriceHistogram(c.Request.Context(), c.Query("search"), bins)
	if err != nil {
		h.logger.Error("failed computing price histogram", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute price histogram"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

// RestockTimeline returns quantities restocked per calendar month.
func (h *StatsHandler) RestockTimeline(c *gin.Context) {
	months, err := h.svc.RestockTimeline(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.logger.Error("failed computing restock timeline", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": "unable to compute restock timeline"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months})
}

// intQuery parses an optional integer query parameter. A missing or empty
// parameter yields zero, which the report service replaces with its default.
// On a malformed value it writes the 400 itself and reports false.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return val, true
}
