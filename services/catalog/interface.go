package catalog

import (
	"context"
	"errors"
	"time"

	catalogRepo "rosa/database/repository/catalog"
	"rosa/models"

	"go.uber.org/zap"
)

// ErrInvalidService is returned when a service definition fails validation.
var ErrInvalidService = errors.New("invalid service definition")

// ErrServiceNotFound mirrors the repository error for callers of this package.
var ErrServiceNotFound = catalogRepo.ErrServiceNotFound

// CatalogService serves services and cabins to booking forms.
type CatalogService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpsertService(ctx context.Context, svc models.Service) (*models.Service, error)
	ListCabins(ctx context.Context) ([]models.Cabin, error)
}

// DefaultCatalogService implements CatalogService with an optional cache in
// front of the repository.
type DefaultCatalogService struct {
	Repo   catalogRepo.CatalogRepository
	Cache  Cache
	TTL    time.Duration
	Logger *zap.Logger
}
