// Package sqlite opens an embedded SQLite database for the sqlite storage driver and for tests.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"secretwall/config"
	"secretwall/internal/errors"
	"secretwall/internal/infra/persistence/gormstore"
	"secretwall/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// MemoryDSN is a private in-memory database that lives as long as its connection.
const MemoryDSN = ":memory:"

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database and closes it when the application stops.
func New(params Params) (*gorm.DB, error) {
	dsn := params.Config.Storage.SQLite.DSN
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := Open(dsn, params.Logger, params.Config)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return Close(db)
		},
	})

	return db, nil
}

// Open opens dsn on the modernc driver and creates the schema from the GORM models.
func Open(dsn string, logger *slog.Logger, cfg *config.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// One connection keeps an in-memory database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}

	db, err := gorm.Open(&sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormstore.NewLogger(logger, cfg),
	})
	if err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to open gorm on sqlite")
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.AuthenticationModel{}, &model.SessionModel{}); err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to migrate sqlite schema")
	}

	return db, nil
}

// Close releases the connection behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	return sqlDB.Close()
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}

	return dsn + "?" + pragmas
}
