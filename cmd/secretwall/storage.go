package main

import (
	"log/slog"

	"secretwall/config"
	"secretwall/internal/domain/repository"
	"secretwall/internal/errors"
	"secretwall/internal/infra/persistence/gormstore"
	"secretwall/internal/infra/persistence/postgres"
	"secretwall/internal/infra/persistence/sqlite"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type storageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

type storageResult struct {
	fx.Out

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	AuthRepo  repository.AuthRepository
	Sessions  repository.SessionRepository
}

// newStorage wires the repositories of the configured storage driver.
func newStorage(params storageParams) (storageResult, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch params.Config.Storage.Driver {
	case config.StorageDriverSQLite:
		if params.Config.Storage.SQLite.DSN == "" {
			params.Logger.Warn("Using in-memory sqlite storage, data is lost on restart")
		}
		db, err = sqlite.New(sqlite.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})

	case config.StorageDriverPostgres:
		db, err = postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})

	default:
		return storageResult{}, errors.Errorf("unknown storage driver: %s", params.Config.Storage.Driver)
	}
	if err != nil {
		return storageResult{}, err
	}

	store := gormstore.NewStore(db)

	return storageResult{
		TxManager: store.TransactionManager(),
		UserRepo:  store.Users(),
		AuthRepo:  store.Auths(),
		Sessions:  store.Sessions(),
	}, nil
}
