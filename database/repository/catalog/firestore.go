package catalogRepo

import (
	"context"
	"fmt"
	"sort"

	"rosa/models"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCatalogRepo implements CatalogRepository on Cloud Firestore.
type FirestoreCatalogRepo struct {
	services *firestore.CollectionRef
	cabins   *firestore.CollectionRef
	logger   *zap.Logger
}

func NewFirestoreCatalogRepo(client *firestore.Client, logger *zap.Logger) *FirestoreCatalogRepo {
	return &FirestoreCatalogRepo{
		services: client.Collection(ServicesCollection),
		cabins:   client.Collection(CabinsCollection),
		logger:   logger,
	}
}

func decodeService(snap *firestore.DocumentSnapshot) (*models.Service, error) {
	var svc models.Service
	if err := snap.DataTo(&svc); err != nil {
		return nil, fmt.Errorf("error decoding service %s: %w", snap.Ref.ID, err)
	}
	svc.ID = snap.Ref.ID
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (repo *FirestoreCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	snaps, err := repo.services.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	services := make([]models.Service, 0, len(snaps))
	for _, snap := range snaps {
		svc, err := decodeService(snap)
		if err != nil {
			repo.logger.Warn("skipping invalid service document", zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		services = append(services, *svc)
	}
	sortServices(services)
	return services, nil
}

func (repo *FirestoreCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	snap, err := repo.services.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	return decodeService(snap)
}

func (repo *FirestoreCatalogRepo) UpsertService(ctx context.Context, svc *models.Service) error {
	if _, err := repo.services.Doc(svc.ID).Set(ctx, svc); err != nil {
		return fmt.Errorf("error saving service %s: %w", svc.ID, err)
	}
	return nil
}

func (repo *FirestoreCatalogRepo) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	snaps, err := repo.cabins.OrderBy("posicao", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing cabins: %w", err)
	}
	cabins := make([]models.Cabin, 0, len(snaps))
	for _, snap := range snaps {
		var c models.Cabin
		if err := snap.DataTo(&c); err != nil {
			repo.logger.Warn("skipping invalid cabin document", zap.String("id", snap.Ref.ID), zap.Error(err))
			continue
		}
		c.ID = snap.Ref.ID
		cabins = append(cabins, c)
	}
	return cabins, nil
}

// sortServices keeps the grid order stable across drivers.
func sortServices(services []models.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
}

func (repo *FirestoreCatalogRepo) UpsertCabin(ctx context.Context, cabin *models.Cabin) error {
	if _, err := repo.cabins.Doc(cabin.ID).Set(ctx, cabin); err != nil {
		return fmt.Errorf("error saving cabin %s: %w", cabin.ID, err)
	}
	return nil
}
