package service

import (
	"context"

	"secretwall/internal/domain/entity"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID       string              // Provider-specific profile id
	Provider entity.ProviderType // The OAuth provider
	Name     string              // Display name, informational only
}

// OAuthProvider runs the server-side authorization code flow against one provider.
type OAuthProvider interface {
	// AuthCodeURL returns the provider consent URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the signed-in profile.
	Exchange(ctx context.Context, code string) (*OAuthUser, error)

	// GetProvider returns the OAuth provider type
	GetProvider() entity.ProviderType
}
