package repository

import (
	"context"
	"errors"

	"secretwall/internal/domain/entity"
)

var (
	// ErrAuthNotFound is returned when an authentication method is not found.
	ErrAuthNotFound = errors.New("authentication method not found")
	// ErrAuthAlreadyExists is returned when (provider, provider user id) is already taken.
	ErrAuthAlreadyExists = errors.New("authentication method already exists")
)

// AuthRepository defines the standard operations for authentication-related persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new authentication method.
	// Returns ErrAuthAlreadyExists when the provider key is taken.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)
}
