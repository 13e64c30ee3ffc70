package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Find(ctx context.Context, search string, limit int64) ([]models.RawProduct, error) {
	args := m.Called(ctx, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawProduct), args.Error(1)
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (models.RawProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawProduct), args.Error(1)
}

func (m *mockRepository) InsertOne(ctx context.Context, product models.Product) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *mockRepository) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	args := m.Called(ctx, products)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRepository) UpdateField(ctx context.Context, id, field string, value any) (int64, int64, error) {
	args := m.Called(ctx, id, field, value)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *mockRepository) *Service {
	svc := NewService(repo, 2000, nil)
	svc.now = func() time.Time {
		return time.Date(2025, time.November, 10, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestList_RunsDocumentsThroughPipeline(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Find", mock.Anything, "gad", int64(2000)).Return([]models.RawProduct{
		{
			"id":           "a1",
			"sku":          "SKU9",
			"name":         "Gadget",
			"quantity":     "5",
			"price":        10,
			"last_restock": "2025-11-07",
		},
	}, nil)

	rows, err := newTestService(repo).List(context.Background(), "gad")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, 10.0, rows[0].Price)
	assert.Equal(t, 50.0, rows[0].Value)
	assert.Equal(t, 3, rows[0].DaysSinceRestock)
	repo.AssertExpectations(t)
}

func TestList_PropagatesStoreError(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Find", mock.Anything, "", int64(2000)).Return(nil, errors.New("connection reset"))

	rows, err := newTestService(repo).List(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, rows)
}

func TestSnapshot_FetchesEverythingUnbounded(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Find", mock.Anything, "", int64(0)).Return([]models.RawProduct{
		{"id": "a1", "name": "Widget", "quantity": 2, "price": 3.0},
		{"id": "a2", "name": "Cable", "quantity": 1, "price": 4.0},
	}, nil)

	rows, err := newTestService(repo).Snapshot(context.Background())

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	repo.AssertExpectations(t)
}

func TestAdd_RejectsNegativeNumbers(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.Add(context.Background(), models.Product{Name: "Widget", Quantity: -1, Price: 5})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	_, err = svc.Add(context.Background(), models.Product{Name: "Widget", Quantity: 1, Price: -0.5})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	repo.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAdd_PinsRestockDateToDayPrecision(t *testing.T) {
	repo := new(mockRepository)
	repo.On("InsertOne", mock.Anything, mock.MatchedBy(func(p models.Product) bool {
		return p.LastRestock == "2025-07-04"
	})).Return("65f0", nil)

	id, err := newTestService(repo).Add(context.Background(), models.Product{
		Name:        "Widget",
		Quantity:    1,
		Price:       2,
		LastRestock: "2025-07-04T12:00:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "65f0", id)
	repo.AssertExpectations(t)
}

func TestUpdateField_RejectsUnknownField(t *testing.T) {
	repo := new(mockRepository)

	_, err := newTestService(repo).UpdateField(context.Background(), "a1", "_id", "oops")

	assert.ErrorIs(t, err, ErrUnknownField)
	repo.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateField_RejectsUnparseableNumbersBeforeWrite(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.UpdateField(context.Background(), "a1", models.FieldQuantity, "dozens")
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	_, err = svc.UpdateField(context.Background(), "a1", models.FieldQuantity, "-4")
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	_, err = svc.UpdateField(context.Background(), "a1", models.FieldPrice, "cheap")
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	repo.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateField_CoercesValueToStoredType(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		want  any
	}{
		{"quantity becomes int", models.FieldQuantity, " 25 ", 25},
		{"price becomes float", models.FieldPrice, "19.5", 19.5},
		{"supplier stays text", models.FieldSupplier, "Acme Corp", "Acme Corp"},
		{"timestamp pinned to date", models.FieldLastRestock, "2025-01-02T08:00:00", "2025-01-02"},
		{"unparseable date passes through", models.FieldLastRestock, "next tuesday", "next tuesday"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("UpdateField", mock.Anything, "a1", tc.field, tc.want).
				Return(int64(1), int64(1), nil)

			res, err := newTestService(repo).UpdateField(context.Background(), "a1", tc.field, tc.value)

			require.NoError(t, err)
			assert.Equal(t, models.UpdateResult{Matched: 1, Modified: 1}, res)
			repo.AssertExpectations(t)
		})
	}
}

func TestUpdateField_NoMatchIsNotAnError(t *testing.T) {
	repo := new(mockRepository)
	repo.On("UpdateField", mock.Anything, "ffffffffffffffffffffffff", models.FieldName, "Ghost").
		Return(int64(0), int64(0), nil)

	res, err := newTestService(repo).UpdateField(context.Background(), "ffffffffffffffffffffffff", models.FieldName, "Ghost")

	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{}, res)
}

func TestDelete_ReportsDeletedCount(t *testing.T) {
	repo := new(mockRepository)
	repo.On("DeleteByID", mock.Anything, "a1").Return(int64(1), nil)

	deleted, err := newTestService(repo).Delete(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestSeed_SkipsWhenCollectionPopulated(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Count", mock.Anything).Return(int64(7), nil)

	res, err := newTestService(repo).Seed(context.Background(), false)

	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, int64(7), res.Existing)
	assert.Zero(t, res.Inserted)
	repo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestSeed_ForceOverridesGuard(t *testing.T) {
	ids := make([]string, len(models.SampleProducts))
	repo := new(mockRepository)
	repo.On("Count", mock.Anything).Return(int64(7), nil)
	repo.On("InsertMany", mock.Anything, models.SampleProducts).Return(ids, nil)

	res, err := newTestService(repo).Seed(context.Background(), true)

	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, len(models.SampleProducts), res.Inserted)
	repo.AssertExpectations(t)
}

func TestSeed_EmptyCollectionInserts(t *testing.T) {
	ids := make([]string, len(models.SampleProducts))
	repo := new(mockRepository)
	repo.On("Count", mock.Anything).Return(int64(0), nil)
	repo.On("InsertMany", mock.Anything, models.SampleProducts).Return(ids, nil)

	res, err := newTestService(repo).Seed(context.Background(), false)

	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, len(models.SampleProducts), res.Inserted)
}
