package catalogRepo

import (
	"context"
	"errors"

	"rosa/models"
)

const (
	ServicesCollection = "services"
	CabinsCollection   = "cabanas"
)

// ErrServiceNotFound is returned when a service document does not exist.
var ErrServiceNotFound = errors.New("catalog repository: service not found")

// CatalogRepository reads the reference data booking forms are built from.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	UpsertService(ctx context.Context, svc *models.Service) error
	// ListCabins returns cabins ordered by posicao.
	ListCabins(ctx context.Context) ([]models.Cabin, error)
	UpsertCabin(ctx context.Context, cabin *models.Cabin) error
}
