// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"secretwall/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a local account.
type RegisterInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required"`
}

// LoginInput defines the data required for a local sign-in.
type LoginInput struct {
	Username string
	Password string
}

// CredentialUsecase covers username/password accounts.
type CredentialUsecase interface {
	// Register creates a user with a local account. It fails with ErrDuplicateUsername
	// when the username is taken, leaving nothing behind.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	// Verify checks a username/password pair and returns the owning user.
	// Unknown usernames and wrong passwords are indistinguishable.
	Verify(ctx context.Context, input *LoginInput) (*entity.User, error)
}
