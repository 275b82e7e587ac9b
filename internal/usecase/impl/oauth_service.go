package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/domain/entity"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/domain/repository"
	"secretwall/internal/domain/service"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"go.uber.org/fx"
)

const oauthStateBytes = 32

// oauthService implements the OAuthUsecase interface.
type oauthService struct {
	provider  service.OAuthProvider
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	events    accountEvents
	logger    *slog.Logger
}

// OAuthServiceParams holds dependencies for OAuthService, injected by Fx.
type OAuthServiceParams struct {
	fx.In

	// Provider is nil when Google sign-in is not configured.
	Provider  service.OAuthProvider `optional:"true"`
	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	AuthRepo  repository.AuthRepository
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	return &oauthService{
		provider:  params.Provider,
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		authRepo:  params.AuthRepo,
		events:    accountEvents{publisher: params.Publisher, now: time.Now},
		logger:    params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginLogin builds the consent URL for a fresh random state.
func (srv *oauthService) BeginLogin() (*usecase.OAuthLoginStart, error) {
	if srv.provider == nil {
		return nil, domainerrors.ErrOAuthNotConfigured
	}

	buf := make([]byte, oauthStateBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to generate oauth state")
	}
	state := hex.EncodeToString(buf)

	return &usecase.OAuthLoginStart{
		AuthURL: srv.provider.AuthCodeURL(state),
		State:   state,
	}, nil
}

// CompleteLogin exchanges the authorization code and resolves the profile to a user.
func (srv *oauthService) CompleteLogin(ctx context.Context, code string) (*usecase.FindOrCreateOutput, error) {
	if srv.provider == nil {
		return nil, domainerrors.ErrOAuthNotConfigured
	}
	if code == "" {
		return nil, domainerrors.ErrUpstream.WithDetails("missing authorization code")
	}

	profile, err := srv.provider.Exchange(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("OAuth exchange failed",
			slog.String("provider", string(srv.provider.GetProvider())),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrUpstream.WithDetails(err.Error())
	}

	return srv.FindOrCreate(ctx, profile.ID)
}

// FindOrCreate returns the user owning a Google profile id, creating it on first sign-in.
func (srv *oauthService) FindOrCreate(ctx context.Context, providerID string) (*usecase.FindOrCreateOutput, error) {
	if providerID == "" {
		return nil, domainerrors.ErrUpstream.WithDetails("empty provider profile id")
	}

	if user, err := srv.findByProviderID(ctx, srv.authRepo, srv.userRepo, providerID); err == nil {
		return &usecase.FindOrCreateOutput{User: user}, nil
	} else if !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, err
	}

	user := &entity.User{
		ID: newUserID(),
		Account: entity.FederatedAccount{
			ProviderType: entity.ProviderTypeGoogle,
			ProviderID:   providerID,
		},
	}

	var existing *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.NewAuthRepository()
		userRepo := repoFactory.NewUserRepository()

		found, err := srv.findByProviderID(ctx, authRepo, userRepo, providerID)
		if err == nil {
			existing = found

			return nil
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return err
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return authRepo.CreateAuthentication(ctx, entity.NewAuthentication(user.ID, user.Account))
	})

	switch {
	case err == nil && existing != nil:
		return &usecase.FindOrCreateOutput{User: existing}, nil
	case errors.Is(err, repository.ErrAuthAlreadyExists):
		// Lost an insert race against another callback for the same profile.
		found, findErr := srv.findByProviderID(ctx, srv.authRepo, srv.userRepo, providerID)
		if findErr != nil {
			return nil, errors.Wrap(findErr, "failed to re-read federated user")
		}

		return &usecase.FindOrCreateOutput{User: found}, nil
	case err != nil:
		srv.log(ctx).Error("Failed to create federated user", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create federated user")
	}

	srv.log(ctx).Info("Federated user created", slog.Any("user_id", user.ID))
	srv.events.emit(ctx, srv.log(ctx), entity.AccountEventUserRegistered, user)

	return &usecase.FindOrCreateOutput{User: user, Created: true}, nil
}

func (srv *oauthService) findByProviderID(
	ctx context.Context,
	authRepo repository.AuthRepository,
	userRepo repository.UserRepository,
	providerID string,
) (*entity.User, error) {
	auth, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeGoogle, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	user, err := userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
