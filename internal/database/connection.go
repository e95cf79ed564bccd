package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"mangaart/internal/config"
	"mangaart/internal/domain"
)

// Store kinds
const (
	KindPostgres = "postgres"
	KindSQLite   = "sqlite"
	KindMemory   = "memory"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Connect opens a pooled gorm connection for the configured URL, checks it
// with a ping and optionally migrates the inquiry table.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, string, error) {
	var dialector gorm.Dialector
	var kind string

	switch {
	case cfg.IsPostgres():
		log.Info("connecting to PostgreSQL database")
		kind = KindPostgres
		dialector = postgres.Open(cfg.GetPostgresDSN())
	case cfg.IsSQLite():
		dbPath := cfg.GetSQLitePath()
		log.Info("connecting to SQLite database", zap.String("path", dbPath))
		kind = KindSQLite
		sqlDB, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database: %w", err)
		}
		dialector = sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        dbPath,
			Conn:       sqlDB,
		}
	default:
		return nil, "", fmt.Errorf("unsupported DATABASE_URL scheme")
	}

	db, err := openGorm(dialector)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if kind == KindPostgres {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
		sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
		log.Info("connection pool configured", zap.Int("max_open", maxOpenConns), zap.Int("max_idle", maxIdleConns))
	} else {
		// SQLite allows a single writer; ":memory:" databases also live and
		// die with their connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := ping(context.Background(), db); err != nil {
		_ = sqlDB.Close()
		return nil, "", fmt.Errorf("database connection test failed: %w", err)
	}

	if cfg.AutoMigrate {
		log.Info("running database migrations")
		if err := db.AutoMigrate(&domain.Inquiry{}); err != nil {
			_ = sqlDB.Close()
			return nil, "", fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info("database connected", zap.String("kind", kind))
	return db, kind, nil
}

// openGorm applies the shared gorm settings. SQL logging stays silent so
// submitted personal data never reaches the logs, and single inserts skip
// the implicit transaction.
func openGorm(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ping tests the database connection
func ping(ctx context.Context, db *gorm.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Stats returns database connection statistics
func Stats(db *gorm.DB) (*sql.DBStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
