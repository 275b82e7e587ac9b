// Package google implements the Google authorization code flow.
package google

import (
	"context"
	"net/http"

	"secretwall/config"
	"secretwall/internal/domain/entity"
	"secretwall/internal/domain/service"
	"secretwall/internal/errors"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var defaultScopes = []string{"profile"}

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	oauthConfig      *oauth2.Config
	userInfoEndpoint string
	httpClient       *http.Client
}

// NewOAuthService creates a Google provider, or returns nil when no client id is configured.
func NewOAuthService(cfg *config.Config) service.OAuthProvider {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil
	}

	return newOAuthService(cfg.GoogleOAuth, nil)
}

func newOAuthService(cfg *config.GoogleOAuthConfig, httpClient *http.Client) *OAuthService {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	endpoint := googleoauth.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	}

	return &OAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		userInfoEndpoint: cfg.UserInfoEndpoint,
		httpClient:       httpClient,
	}
}

// GetProvider returns the OAuth provider type
func (s *OAuthService) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// AuthCodeURL builds the Google consent URL for state.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token and reads the profile id.
func (s *OAuthService) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "exchange authorization code")
	}

	opts := []option.ClientOption{option.WithHTTPClient(s.oauthConfig.Client(ctx, token))}
	if s.userInfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(s.userInfoEndpoint))
	}

	api, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create userinfo client")
	}

	info, err := api.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "fetch google profile")
	}

	if info.Id == "" {
		return nil, errors.New("google profile has no id")
	}

	return &service.OAuthUser{
		ID:       info.Id,
		Provider: entity.ProviderTypeGoogle,
		Name:     info.Name,
	}, nil
}
