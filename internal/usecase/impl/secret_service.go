package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/domain/entity"
	domainerrors "secretwall/internal/domain/errors"
	"secretwall/internal/domain/repository"
	"secretwall/internal/domain/service"
	"secretwall/internal/errors"
	"secretwall/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// secretService implements the SecretUsecase interface.
type secretService struct {
	userRepo repository.UserRepository
	events   accountEvents
	validate *validator.Validate
	logger   *slog.Logger
}

// SecretServiceParams holds dependencies for SecretService, injected by Fx.
type SecretServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewSecretService is the constructor for secretService.
func NewSecretService(params SecretServiceParams) usecase.SecretUsecase {
	return &secretService{
		userRepo: params.UserRepo,
		events:   accountEvents{publisher: params.Publisher, now: time.Now},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   params.Logger,
	}
}

func (srv *secretService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit sets the secret of the calling user. The last write wins.
func (srv *secretService) Submit(ctx context.Context, input *usecase.SubmitSecretInput) error {
	if input == nil || input.UserID == uuid.Nil {
		return domainerrors.ErrNotAuthenticated
	}

	secret := strings.TrimSpace(input.Secret)
	if err := srv.validate.Var(secret, "required,max=10000"); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("secret must be between 1 and 10000 characters")
	}

	if err := srv.userRepo.UpdateSecret(ctx, input.UserID, secret); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Secret submitted for missing user", slog.Any("user_id", input.UserID))

			return domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to save secret", slog.Any("user_id", input.UserID), slog.Any("error", err))

		return errors.Wrap(err, "failed to save secret")
	}

	srv.log(ctx).Info("Secret submitted", slog.Any("user_id", input.UserID))
	srv.events.emit(ctx, srv.log(ctx), entity.AccountEventSecretSubmitted, &entity.User{ID: input.UserID})

	return nil
}

// List returns all users with a secret, oldest first.
func (srv *secretService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.ListWithSecret(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list secrets", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list secrets")
	}

	return users, nil
}
