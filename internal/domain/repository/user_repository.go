// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"secretwall/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user, with its account, by unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create persists the user row. The account is stored separately through AuthRepository.
	Create(ctx context.Context, user *entity.User) error

	// UpdateSecret replaces the secret of exactly one user.
	UpdateSecret(ctx context.Context, id uuid.UUID, secret string) error

	// ListWithSecret returns every user whose secret is set, oldest first.
	ListWithSecret(ctx context.Context) ([]*entity.User, error)
}
