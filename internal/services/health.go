package services

import (
	"context"

	"mangaart/internal/database"
)

// HealthResult describes service health
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage"`
}

// HealthService implements the health service
type HealthService struct {
	name  string
	store database.Store
}

// NewHealthService creates a new health service
func NewHealthService(name string, store database.Store) *HealthService {
	return &HealthService{name: name, store: store}
}

// Check pings the store. The result is always filled in; err reports
// whether the service is unhealthy.
func (s *HealthService) Check(ctx context.Context) (*HealthResult, error) {
	result := &HealthResult{
		Status:  "healthy",
		Service: s.name,
		Storage: s.store.Kind(),
	}
	if err := s.store.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		return result, err
	}
	return result, nil
}
