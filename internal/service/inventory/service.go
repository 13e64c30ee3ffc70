package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/service/dataset"
)

const dateLayout = "2006-01-02"

// ErrUnknownField indicates an update naming a field outside the updatable set.
var ErrUnknownField = errors.New("unknown product field")

// ErrInvalidFieldValue indicates a user-supplied value that cannot be coerced
// to the target field's type. It is surfaced before any write is attempted.
var ErrInvalidFieldValue = errors.New("invalid field value")

// Manager describes the inventory operations exposed to the transport layer
// and the snapshot scheduler.
type Manager interface {
	List(ctx context.Context, search string) ([]models.Row, error)
	Snapshot(ctx context.Context) ([]models.Row, error)
	Get(ctx context.Context, id string) (models.RawProduct, error)
	Add(ctx context.Context, product models.Product) (string, error)
	UpdateField(ctx context.Context, id, field, value string) (models.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
	Seed(ctx context.Context, force bool) (models.SeedResult, error)
}

// Service implements Manager on top of the document store.
type Service struct {
	repo   mongodb.Repository
	limit  int64
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an inventory service. fetchLimit bounds every filtered
// read; full snapshots are unbounded.
func NewService(repo mongodb.Repository, fetchLimit int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		limit:  fetchLimit,
		logger: logger,
		now:    time.Now,
	}
}

// List fetches documents matching the free-text search, bounded by the
// configured limit, and runs them through the normalize/enrich pipeline.
// Store failures pass through untouched; there is no retry.
func (s *Service) List(ctx context.Context, search string) ([]models.Row, error) {
	docs, err := s.repo.Find(ctx, search, s.limit)
	if err != nil {
		return nil, err
	}

	rows := dataset.Enrich(dataset.Normalize(docs), s.now())
	s.logger.Debug("inventory listed", zap.String("search", search), zap.Int("rows", len(rows)))
	return rows, nil
}

// Snapshot returns every document in the collection, unbounded, through the
// same pipeline. Full exports and scheduled snapshots use this.
func (s *Service) Snapshot(ctx context.Context) ([]models.Row, error) {
	docs, err := s.repo.Find(ctx, "", 0)
	if err != nil {
		return nil, err
	}
	return dataset.Enrich(dataset.Normalize(docs), s.now()), nil
}

// Get loads a single raw document by id.
func (s *Service) Get(ctx context.Context, id string) (models.RawProduct, error) {
	return s.repo.FindByID(ctx, id)
}

// Add validates and persists a new product, returning the assigned id. A
// parseable restock date is pinned to YYYY-MM-DD before storage; any other
// text is stored as given and treated as unknown downstream.
func (s *Service) Add(ctx context.Context, product models.Product) (string, error) {
	if product.Quantity < 0 {
		return "", fmt.Errorf("%w: quantity must not be negative", ErrInvalidFieldValue)
	}
	if product.Price < 0 {
		return "", fmt.Errorf("%w: price must not be negative", ErrInvalidFieldValue)
	}
	product.LastRestock = normalizeDateText(product.LastRestock)

	id, err := s.repo.InsertOne(ctx, product)
	if err != nil {
		return "", err
	}

	s.logger.Info("product added", zap.String("id", id), zap.String("sku", product.SKU))
	return id, nil
}

// UpdateField applies a single-field update. The textual value is coerced to
// the field's stored type first; coercion failures surface before any write.
// An id that matches nothing yields zero counts without an error.
func (s *Service) UpdateField(ctx context.Context, id, field, value string) (models.UpdateResult, error) {
	if !models.IsUpdatableField(field) {
		return models.UpdateResult{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	coerced, err := coerceFieldValue(field, value)
	if err != nil {
		return models.UpdateResult{}, err
	}

	matched, modified, err := s.repo.UpdateField(ctx, id, field, coerced)
	if err != nil {
		return models.UpdateResult{}, err
	}

	s.logger.Info("product updated",
		zap.String("id", id),
		zap.String("field", field),
		zap.Int64("matched", matched),
		zap.Int64("modified", modified))

	return models.UpdateResult{Matched: matched, Modified: modified}, nil
}

// Delete removes a product by id and reports the deleted count (zero when
// nothing matched; that is not an error).
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logger.Info("product deleted", zap.String("id", id), zap.Int64("deleted", deleted))
	return deleted, nil
}

// Seed bulk-inserts the sample catalog. When the collection already holds
// documents the run is skipped unless force is set.
func (s *Service) Seed(ctx context.Context, force bool) (models.SeedResult, error) {
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return models.SeedResult{}, err
	}

	if existing > 0 && !force {
		s.logger.Info("seed skipped, collection not empty", zap.Int64("existing", existing))
		return models.SeedResult{Existing: existing, Skipped: true}, nil
	}

	ids, err := s.repo.InsertMany(ctx, models.SampleProducts)
	if err != nil {
		return models.SeedResult{}, err
	}

	s.logger.Info("sample data seeded", zap.Int("inserted", len(ids)), zap.Bool("forced", force))
	return models.SeedResult{Existing: existing, Inserted: len(ids)}, nil
}

// coerceFieldValue converts the textual update value to the field's stored
// type. Quantity and price must parse and be non-negative; a restock date
// that does not parse is stored as given and the pipeline treats it as
// unknown, mirroring how heterogeneous the collection already is.
func coerceFieldValue(field, value string) (any, error) {
	switch field {
	case models.FieldQuantity:
		qty, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalidFieldValue, value)
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidFieldValue)
		}
		return qty, nil
	case models.FieldPrice:
		price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q is not a number", ErrInvalidFieldValue, value)
		}
		if price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidFieldValue)
		}
		return price, nil
	case models.FieldLastRestock:
		return normalizeDateText(value), nil
	default:
		return value, nil
	}
}

// normalizeDateText pins parseable ISO dates to YYYY-MM-DD and returns
// anything else untouched.
func normalizeDateText(value string) string {
	str := strings.TrimSpace(value)
	if len(str) >= len(dateLayout) {
		if parsed, err := time.Parse(dateLayout, str[:len(dateLayout)]); err == nil {
			return parsed.Format(dateLayout)
		}
	}
	return value
}
