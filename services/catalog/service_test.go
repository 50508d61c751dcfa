package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	catalogRepo "rosa/database/repository/catalog"
	"rosa/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]models.Service)
	return s, args.Error(1)
}

func (m *MockCatalogRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Service)
	return s, args.Error(1)
}

func (m *MockCatalogRepository) UpsertService(ctx context.Context, svc *models.Service) error {
	return m.Called(ctx, svc).Error(0)
}

func (m *MockCatalogRepository) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]models.Cabin)
	return c, args.Error(1)
}

func (m *MockCatalogRepository) UpsertCabin(ctx context.Context, cabin *models.Cabin) error {
	return m.Called(ctx, cabin).Error(0)
}

// memCache is a map-backed Cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemCache() *memCache { return &memCache{entries: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

var sauna = models.Service{
	ID:            "sauna",
	Name:          "Sauna",
	Type:          models.ServiceTypeSlots,
	DefaultStatus: models.DefaultStatusOpen,
	Units:         []string{"Única"},
	TimeSlots:     []models.TimeSlot{{ID: "11-12", StartTime: "11:00", EndTime: "12:00", Label: "11h–12h"}},
}

func newService(repo *MockCatalogRepository, cache Cache) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Cache: cache, TTL: time.Minute, Logger: zap.NewNop()}
}

func TestListServices_ReadsThroughCache(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListServices", mock.Anything).Return([]models.Service{sauna}, nil).Once()
	svc := newService(repo, newMemCache())

	first, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	second, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "sauna", second[0].ID)
	repo.AssertNumberOfCalls(t, "ListServices", 1)
}

func TestListServices_CacheFailureFallsBackToRepo(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListServices", mock.Anything).Return([]models.Service{sauna}, nil).Twice()
	cache := newMemCache()
	cache.failGet = true
	svc := newService(repo, cache)

	for i := 0; i < 2; i++ {
		services, err := svc.ListServices(context.Background())
		require.NoError(t, err)
		assert.Len(t, services, 1)
	}
	repo.AssertExpectations(t)
}

func TestGetService(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListServices", mock.Anything).Return([]models.Service{sauna}, nil)
	repo.On("GetService", mock.Anything, "massagem").Return(nil, catalogRepo.ErrServiceNotFound)
	svc := newService(repo, nil)

	got, err := svc.GetService(context.Background(), "sauna")
	require.NoError(t, err)
	assert.Equal(t, "Sauna", got.Name)

	_, err = svc.GetService(context.Background(), "massagem")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpsertService_InvalidatesCache(t *testing.T) {
	repo := new(MockCatalogRepository)
	repo.On("ListServices", mock.Anything).Return([]models.Service{sauna}, nil)
	repo.On("UpsertService", mock.Anything, mock.Anything).Return(nil).Once()
	cache := newMemCache()
	svc := newService(repo, cache)

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Contains(t, cache.entries, servicesCacheKey)

	saved, err := svc.UpsertService(context.Background(), models.Service{
		ID:        "jacuzzi",
		Name:      " Jacuzzi ",
		Type:      models.ServiceTypeSlots,
		Units:     []string{"Deck"},
		TimeSlots: []models.TimeSlot{{ID: "14-15", StartTime: "14:00", EndTime: "15:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jacuzzi", saved.Name)
	assert.Equal(t, models.DefaultStatusOpen, saved.DefaultStatus)
	assert.Equal(t, "14:00–15:00", saved.TimeSlots[0].Label)
	assert.NotContains(t, cache.entries, servicesCacheKey)
}

func TestUpsertService_Validation(t *testing.T) {
	tests := []struct {
		name string
		svc  models.Service
	}{
		{"missing id", models.Service{Name: "X", Type: models.ServiceTypePreference}},
		{"missing name", models.Service{ID: "x", Type: models.ServiceTypePreference}},
		{"unknown type", models.Service{ID: "x", Name: "X", Type: "weekly"}},
		{"slots without units", models.Service{ID: "x", Name: "X", Type: models.ServiceTypeSlots, TimeSlots: sauna.TimeSlots}},
		{"slots without time slots", models.Service{ID: "x", Name: "X", Type: models.ServiceTypeSlots, Units: []string{"A"}}},
		{"duplicate slot ids", models.Service{ID: "x", Name: "X", Type: models.ServiceTypeSlots, Units: []string{"A"},
			TimeSlots: []models.TimeSlot{{ID: "1"}, {ID: "1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCatalogRepository)
			_, err := newService(repo, nil).UpsertService(context.Background(), tt.svc)
			assert.ErrorIs(t, err, ErrInvalidService)
			repo.AssertNotCalled(t, "UpsertService", mock.Anything, mock.Anything)
		})
	}
}
