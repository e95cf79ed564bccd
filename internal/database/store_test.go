package database

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"

	"mangaart/internal/config"
	"mangaart/internal/domain"
	apperrors "mangaart/pkg/errors"
)

func sampleInquiry() *domain.Inquiry {
	return &domain.Inquiry{
		Name:    "Lina",
		Email:   "lina@example.com",
		Phone:   "0123",
		Country: "Tunisia",
		Message: "Interested in lessons",
	}
}

func TestOpenWithoutURLInProductionIsFatal(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "production"}}

	store, err := Open(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, store)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestOpenWithoutURLInDevelopmentFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "development"}}

	store, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, KindMemory, store.Kind())
	assert.IsType(t, &MemoryStore{}, store)
}

func TestOpenUnreachableDatabaseIsStorageError(t *testing.T) {
	cfg := &config.Config{
		App:      config.AppConfig{Env: "development"},
		Database: config.DatabaseConfig{URL: "mysql://nope"},
	}

	_, err := Open(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStorageUnavailable, apperrors.CodeOf(err))
}

func TestMemoryStoreAssignsSequentialIDs(t *testing.T) {
	store := NewMemoryStore()
	before := time.Now().UTC()

	first, err := store.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)
	second, err := store.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.False(t, first.CreatedAt.Before(before))
	assert.Len(t, store.Inquiries(), 2)
}

func TestMemoryStoreDoesNotAliasCallerData(t *testing.T) {
	store := NewMemoryStore()
	in := sampleInquiry()
	in.ID = 99

	out, err := store.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, uint(99), in.ID, "input must not be mutated")
	out.Name = "changed"
	assert.Equal(t, "Lina", store.Inquiries()[0].Name)
}

func TestMemoryStoresAreIndependent(t *testing.T) {
	a, b := NewMemoryStore(), NewMemoryStore()

	_, err := a.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)
	got, err := b.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)

	assert.Equal(t, uint(1), got.ID)
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	store := NewMemoryStore()
	const n = 64

	var wg sync.WaitGroup
	ids := make(chan uint, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inq, err := store.Create(context.Background(), sampleInquiry())
			if assert.NoError(t, err) {
				ids <- inq.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	stored := store.Inquiries()
	require.Len(t, stored, n)
	for i, inq := range stored {
		assert.Equal(t, uint(i+1), inq.ID, "list order must follow id order")
	}
}

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := openGorm(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return NewGormStore(db, KindPostgres), mock
}

func TestGormStoreCreate(t *testing.T) {
	store, mock := newMockStore(t)
	before := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inquiries"`)).
		WithArgs("Lina", "lina@example.com", "0123", "Tunisia", "Interested in lessons", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	in := sampleInquiry()
	got, err := store.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, uint(7), got.ID)
	assert.False(t, got.CreatedAt.Before(before))
	assert.Equal(t, "0123", got.Phone)
	assert.Zero(t, in.ID, "input must not be mutated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreCreateIgnoresCallerCancellation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inquiries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := store.Create(ctx, sampleInquiry())
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreCreateConstraintViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inquiries"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", TableName: "inquiries", Message: "duplicate key value"})

	got, err := store.Create(context.Background(), sampleInquiry())
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, apperrors.ErrCodeStorageUnavailable, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "constraint violation (23505) on inquiries")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreCreateNetworkFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inquiries"`)).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := store.Create(context.Background(), sampleInquiry())
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.Contains(t, err.Error(), "failed to insert inquiry")
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	db, kind, err := Connect(config.DatabaseConfig{URL: "sqlite:///:memory:", AutoMigrate: true}, zap.NewNop())
	require.NoError(t, err)
	store := NewGormStore(db, kind)
	t.Cleanup(func() { store.Close() })

	assert.Equal(t, KindSQLite, store.Kind())
	require.NoError(t, store.Ping(context.Background()))

	first, err := store.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)
	second, err := store.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	var stored domain.Inquiry
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, "lina@example.com", stored.Email)
	assert.Equal(t, "Tunisia", stored.Country)
}

func TestSQLiteStoreRejectsUpdates(t *testing.T) {
	db, kind, err := Connect(config.DatabaseConfig{URL: "sqlite:///:memory:", AutoMigrate: true}, zap.NewNop())
	require.NoError(t, err)
	store := NewGormStore(db, kind)
	t.Cleanup(func() { store.Close() })

	stored, err := store.Create(context.Background(), sampleInquiry())
	require.NoError(t, err)

	stored.Message = "edited"
	err = db.Save(stored).Error
	assert.ErrorIs(t, err, domain.ErrInquiryImmutable)

	err = db.Delete(stored).Error
	assert.ErrorIs(t, err, domain.ErrInquiryImmutable)
}
