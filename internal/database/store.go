package database

import (
	"context"

	"go.uber.org/zap"

	"mangaart/internal/config"
	"mangaart/internal/domain"
	apperrors "mangaart/pkg/errors"
)

// Store persists validated inquiries and assigns their ID and CreatedAt.
// Implementations never modify the inquiry they are given.
type Store interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error)
	Ping(ctx context.Context) error
	Kind() string
	Close() error
}

// Open picks the store variant once, at startup. A configured DATABASE_URL
// always means a durable store. Without one, only a non-production process
// may fall back to memory; production refuses to start.
func Open(cfg *config.Config, log *zap.Logger) (Store, error) {
	if !cfg.Database.IsConfigured() {
		if cfg.App.IsProduction() {
			return nil, apperrors.New(apperrors.ErrCodeConfiguration,
				"DATABASE_URL must be set in production; refusing to run without persistence")
		}
		log.Warn("DATABASE_URL not set; using in-memory store, inquiries are lost on restart",
			zap.String("env", cfg.App.Env))
		return NewMemoryStore(), nil
	}

	db, kind, err := Connect(cfg.Database, log)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, "failed to open database", err)
	}
	return NewGormStore(db, kind), nil
}
