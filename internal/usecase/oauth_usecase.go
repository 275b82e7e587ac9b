package usecase

import (
	"context"

	"secretwall/internal/domain/entity"
)

// OAuthLoginStart is the redirect target of a new federated sign-in.
type OAuthLoginStart struct {
	AuthURL string
	// State must be stored by the caller and compared on callback.
	State string
}

// FindOrCreateOutput is the user resolved from a provider profile.
type FindOrCreateOutput struct {
	User    *entity.User
	Created bool
}

// OAuthUsecase covers federated sign-in through Google.
type OAuthUsecase interface {
	BeginLogin() (*OAuthLoginStart, error)
	// CompleteLogin exchanges code for a profile and resolves it to a user.
	CompleteLogin(ctx context.Context, code string) (*FindOrCreateOutput, error)
	// FindOrCreate returns the user owning the Google profile id, creating it on first sight.
	FindOrCreate(ctx context.Context, providerID string) (*FindOrCreateOutput, error)
}
