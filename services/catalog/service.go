package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rosa/models"

	"go.uber.org/zap"
)

// readThrough loads key from the cache into dst, or calls load and caches
// its result. Cache failures are logged and never fail the read.
func (s *DefaultCatalogService) readThrough(ctx context.Context, key string, dst interface{}, load func() (interface{}, error)) error {
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key)
		if err == nil {
			if jsonErr := json.Unmarshal(raw, dst); jsonErr == nil {
				return nil
			}
		} else if !errors.Is(err, ErrCacheMiss) {
			s.Logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, raw, s.TTL); err != nil {
			s.Logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.readThrough(ctx, servicesCacheKey, &services, func() (interface{}, error) {
		return s.Repo.ListServices(ctx)
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}

// GetService serves from the cached list and falls back to the repository
// for services created after the list was cached.
func (s *DefaultCatalogService) GetService(ctx context.Context, id string) (*models.Service, error) {
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return s.Repo.GetService(ctx, id)
}

func (s *DefaultCatalogService) ListCabins(ctx context.Context) ([]models.Cabin, error) {
	var cabins []models.Cabin
	err := s.readThrough(ctx, cabinsCacheKey, &cabins, func() (interface{}, error) {
		return s.Repo.ListCabins(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cabins, nil
}

// UpsertService validates and stores a service definition, then drops the
// cached list.
func (s *DefaultCatalogService) UpsertService(ctx context.Context, svc models.Service) (*models.Service, error) {
	normalizeService(&svc)
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	if err := s.Repo.UpsertService(ctx, &svc); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, servicesCacheKey); err != nil {
			s.Logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}
	return &svc, nil
}

func normalizeService(svc *models.Service) {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.DefaultStatus == "" {
		svc.DefaultStatus = models.DefaultStatusOpen
	}
	for i, ts := range svc.TimeSlots {
		if ts.Label == "" {
			svc.TimeSlots[i].Label = fmt.Sprintf("%s–%s", ts.StartTime, ts.EndTime)
		}
	}
}

func validateService(svc *models.Service) error {
	if svc.ID == "" || strings.Contains(svc.ID, "/") {
		return fmt.Errorf("%w: id is required and must not contain '/'", ErrInvalidService)
	}
	if svc.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidService)
	}
	if err := svc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	if svc.Type != models.ServiceTypeSlots {
		return nil
	}
	if len(svc.Units) == 0 {
		return fmt.Errorf("%w: slots services need at least one unit", ErrInvalidService)
	}
	if len(svc.TimeSlots) == 0 {
		return fmt.Errorf("%w: slots services need at least one time slot", ErrInvalidService)
	}
	seen := make(map[string]bool, len(svc.TimeSlots))
	for _, ts := range svc.TimeSlots {
		if ts.ID == "" {
			return fmt.Errorf("%w: time slot id is required", ErrInvalidService)
		}
		if seen[ts.ID] {
			return fmt.Errorf("%w: duplicate time slot id %q", ErrInvalidService, ts.ID)
		}
		seen[ts.ID] = true
	}
	return nil
}
