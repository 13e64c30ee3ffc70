package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/dataset"
)

// RowSource provides enriched inventory rows for a free-text search. The
// inventory service satisfies it.
type RowSource interface {
	List(ctx context.Context, search string) ([]models.Row, error)
}

// Options carries the aggregation defaults applied when a request leaves a
// knob unset.
type Options struct {
	LowStockThreshold int
	LowStockLimit     int
	TopProducts       int
	PriceBins         int
}

// Service computes read-only statistics over the current inventory view.
// Every call re-fetches; nothing is cached between requests.
type Service struct {
	source RowSource
	opts   Options
	logger *zap.Logger
}

// NewService wires a report service over the given row source.
func NewService(source RowSource, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, opts: opts, logger: logger}
}

// Summary returns the headline metrics for the filtered view.
func (s *Service) Summary(ctx context.Context, search string) (models.Summary, error) {
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return models.Summary{}, err
	}
	return dataset.Summarize(rows), nil
}

// Categories returns per-category quantity and value totals, ascending by
// category name.
func (s *Service) Categories(ctx context.Context, search string) ([]models.CategoryTotal, error) {
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return dataset.CategoryRollup(rows), nil
}

// TopProducts returns the n most valuable rows; n <= 0 falls back to the
// configured default.
func (s *Service) TopProducts(ctx context.Context, search string, n int) ([]models.Row, error) {
	if n <= 0 {
		n = s.opts.TopProducts
	}
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return dataset.TopByValue(rows, n), nil
}

// LowStock returns rows at or below the threshold, scarcest first, capped at
// limit. threshold <= 0 and limit <= 0 fall back to the configured defaults.
func (s *Service) LowStock(ctx context.Context, search string, threshold, limit int) ([]models.Row, error) {
	if threshold <= 0 {
		threshold = s.opts.LowStockThreshold
	}
	if limit <= 0 {
		limit = s.opts.LowStockLimit
	}
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return dataset.LowStock(rows, threshold, limit), nil
}

// PriceHistogram buckets prices into bins equal-width ranges; bins <= 0 falls
// back to the configured default.
func (s *Service) PriceHistogram(ctx context.Context, search string, bins int) ([]models.PriceBucket, error) {
	if bins <= 0 {
		bins = s.opts.PriceBins
	}
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return dataset.PriceHistogram(rows, bins), nil
}

// RestockTimeline returns quantities restocked per calendar month, ascending.
func (s *Service) RestockTimeline(ctx context.Context, search string) ([]models.MonthlyRestock, error) {
	rows, err := s.source.List(ctx, search)
	if err != nil {
		return nil, err
	}
	return dataset.RestockTimeline(rows), nil
}
