package gormstore

import (
	"secretwall/internal/domain/repository"

	"gorm.io/gorm"
)

// Store bundles the repositories that share one *gorm.DB.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db, which may be a PostgreSQL or SQLite connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TransactionManager() repository.TransactionManager {
	return NewTransactionManager(s.db)
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.db)
}

func (s *Store) Auths() repository.AuthRepository {
	return NewAuthRepository(s.db)
}

func (s *Store) Sessions() repository.SessionRepository {
	return NewSessionRepository(s.db)
}
