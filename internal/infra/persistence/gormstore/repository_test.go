package gormstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"secretwall/internal/domain/entity"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/domain/repository"
	"secretwall/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "created_at", "updated_at"}).
			AddRow(userID.String(), "the cake is a lie", now, now))
	mock.ExpectQuery(`SELECT \* FROM "user_authentications" WHERE "user_authentications"."user_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "provider", "provider_user_id", "password_hash", "created_at"}).
			AddRow(uuid.New().String(), userID.String(), "local", "alice", "$2a$10$hash", now))

	user, err := repo.FindByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username())
	require.NotNil(t, user.Secret)
	assert.Equal(t, "the cake is a lie", *user.Secret)
	assert.Equal(t, entity.LocalAccount{Username: "alice", PasswordHash: "$2a$10$hash"}, user.Account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "created_at", "updated_at"}))

	user, err := repo.FindByID(context.Background(), uuid.New())
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateSecret(t *testing.T) {
	t.Run("updates one row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET "secret"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateSecret(context.Background(), uuid.New(), "shh"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET "secret"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateSecret(context.Background(), uuid.New(), "shh")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("driver failure becomes a database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(`UPDATE "users" SET "secret"`).
			WillReturnError(sql.ErrConnDone)

		err := repo.UpdateSecret(context.Background(), uuid.New(), "shh")

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	})
}

func TestUserRepository_ListWithSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	first, second := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE secret IS NOT NULL ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "secret", "created_at", "updated_at"}).
			AddRow(first.String(), "one", now, now).
			AddRow(second.String(), "two", now, now))
	mock.ExpectQuery(`SELECT \* FROM "user_authentications" WHERE "user_authentications"."user_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "provider", "provider_user_id", "password_hash", "created_at"}).
			AddRow(uuid.New().String(), first.String(), "local", "alice", "hash", now).
			AddRow(uuid.New().String(), second.String(), "google", "g-7", "", now))

	users, err := repo.ListWithSecret(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "one", *users[0].Secret)
	assert.Equal(t, "alice", users[0].Username())
	assert.Equal(t, entity.FederatedAccount{ProviderType: entity.ProviderTypeGoogle, ProviderID: "g-7"}, users[1].Account)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRepository_CreateAuthentication(t *testing.T) {
	t.Run("inserts", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAuthRepository(db)

		mock.ExpectExec(`INSERT INTO "user_authentications"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		auth := entity.NewAuthentication(uuid.New(), entity.LocalAccount{Username: "alice", PasswordHash: "hash"})
		require.NoError(t, repo.CreateAuthentication(context.Background(), auth))
		assert.NotEqual(t, uuid.Nil, auth.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAuthRepository(db)

		mock.ExpectExec(`INSERT INTO "user_authentications"`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, Message: "duplicate key value violates unique constraint"})

		auth := entity.NewAuthentication(uuid.New(), entity.LocalAccount{Username: "alice", PasswordHash: "hash"})
		err := repo.CreateAuthentication(context.Background(), auth)
		assert.ErrorIs(t, err, repository.ErrAuthAlreadyExists)
	})
}

func TestAuthRepository_FindAuthentication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "user_authentications" WHERE .*provider = \$1 AND provider_user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "provider", "provider_user_id", "password_hash", "created_at"}).
			AddRow(uuid.New().String(), userID.String(), "google", "g-1", "", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "user_authentications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	auth, err := repo.FindAuthentication(context.Background(), entity.ProviderTypeGoogle, "g-1")
	require.NoError(t, err)
	assert.Equal(t, userID, auth.UserID)
	assert.Equal(t, entity.ProviderTypeGoogle, auth.Provider)

	_, err = repo.FindAuthentication(context.Background(), entity.ProviderTypeLocal, "nobody")
	assert.ErrorIs(t, err, repository.ErrAuthNotFound)
}

func TestSessionRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db)

	sessionID, userID := uuid.New(), uuid.New()
	expires := time.Now().Add(time.Hour)

	mock.ExpectExec(`INSERT INTO "sessions"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "created_at", "expires_at"}).
			AddRow(sessionID.String(), userID.String(), "alice", time.Now(), expires))
	mock.ExpectExec(`DELETE FROM "sessions" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "sessions" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Session{
		ID:        sessionID,
		Snapshot:  entity.SessionSnapshot{UserID: userID, Username: "alice"},
		ExpiresAt: expires,
	}))

	session, err := repo.FindByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.SessionSnapshot{UserID: userID, Username: "alice"}, session.Snapshot)

	require.NoError(t, repo.Delete(ctx, sessionID))

	_, err = repo.FindByID(ctx, sessionID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_Execute(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "user_authentications"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		user := &entity.User{ID: uuid.New(), Account: entity.LocalAccount{Username: "alice", PasswordHash: "hash"}}
		err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
			if err := f.NewUserRepository().Create(context.Background(), user); err != nil {
				return err
			}

			return f.NewAuthRepository().CreateAuthentication(context.Background(), entity.NewAuthentication(user.ID, user.Account))
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the business error", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		sentinel := errors.New("stop")
		err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
