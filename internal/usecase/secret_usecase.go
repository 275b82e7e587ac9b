package usecase

import (
	"context"

	"secretwall/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitSecretInput defines the data required to set a user's secret.
type SubmitSecretInput struct {
	UserID uuid.UUID
	Secret string
}

// SecretUsecase covers the secret wall.
type SecretUsecase interface {
	// Submit replaces the secret of the given user.
	Submit(ctx context.Context, input *SubmitSecretInput) error
	// List returns every user who has a secret.
	List(ctx context.Context) ([]*entity.User, error)
}
