package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"mangaart/internal/domain"
	"mangaart/internal/metrics"
	apperrors "mangaart/pkg/errors"
)

// GormStore is the durable store backed by PostgreSQL or SQLite
type GormStore struct {
	db   *gorm.DB
	kind string
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open gorm connection
func NewGormStore(db *gorm.DB, kind string) *GormStore {
	return &GormStore{db: db, kind: kind}
}

// Create inserts the inquiry and returns the stored row. The insert runs to
// completion even if the caller's context is cancelled.
func (s *GormStore) Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error) {
	record := *inquiry
	record.ID = 0
	record.CreatedAt = time.Time{}

	start := time.Now()
	err := s.db.WithContext(context.WithoutCancel(ctx)).Create(&record).Error
	metrics.RecordDBQuery("insert_inquiry", time.Since(start), err)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageUnavailable, describeError(err), err)
	}
	return &record, nil
}

// Ping checks the connection and refreshes the pool gauges
func (s *GormStore) Ping(ctx context.Context) error {
	if err := ping(ctx, s.db); err != nil {
		return err
	}
	if stats, err := Stats(s.db); err == nil {
		metrics.UpdateDBConnections(stats.InUse, stats.Idle)
	}
	return nil
}

// Kind returns "postgres" or "sqlite"
func (s *GormStore) Kind() string {
	return s.kind
}

// Close releases the connection pool
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func describeError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "23") {
			return fmt.Sprintf("constraint violation (%s) on %s", pgErr.Code, pgErr.TableName)
		}
		return fmt.Sprintf("postgres error %s", pgErr.Code)
	}
	return "failed to insert inquiry"
}
