package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"rosa/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	cabinColl   *mongo.Collection
	logger      *zap.Logger
}

func NewMongoCatalogRepo(db *mongo.Database, logger *zap.Logger) *MongoCatalogRepo {
	return &MongoCatalogRepo{
		serviceColl: db.Collection(ServicesCollection),
		cabinColl:   db.Collection(CabinsCollection),
		logger:      logger,
	}
}

func (repo *MongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	cursor, err := repo.serviceColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	for cursor.Next(ctx) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, fmt.Errorf("error decoding service: %w", err)
		}
		if err := svc.Validate(); err != nil {
			repo.logger.Warn("skipping invalid service document", zap.String("id", svc.ID), zap.Error(err))
			continue
		}
		services = append(services, svc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	sortServices(services)
	return services, nil
}

func (repo *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := repo.serviceColl.FindOne(ctx, bson.M{"_id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("error fetching service %s: %w", id, err)
	}
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (repo *MongoCatalogRepo) UpsertService(ctx context.Context, svc *models.Service) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.serviceColl.ReplaceOne(ctx, bson.M{"_id": svc.ID}, svc, opts); err != nil {
		return fmt.Errorf("error saving service %s: %w", svc.ID, err)
	}
	return nil
}

func (repo *MongoCatalogRepo) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "posicao", Value: 1}})
	cursor, err := repo.cabinColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing cabins: %w", err)
	}
	defer cursor.Close(ctx)

	cabins := []models.Cabin{}
	if err := cursor.All(ctx, &cabins); err != nil {
		return nil, fmt.Errorf("error decoding cabins: %w", err)
	}
	return cabins, nil
}

func (repo *MongoCatalogRepo) UpsertCabin(ctx context.Context, cabin *models.Cabin) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.cabinColl.ReplaceOne(ctx, bson.M{"_id": cabin.ID}, cabin, opts); err != nil {
		return fmt.Errorf("error saving cabin %s: %w", cabin.ID, err)
	}
	return nil
}
