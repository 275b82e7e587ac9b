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
	"go.uber.org/fx"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused instead of truncated.
const maxPasswordBytes = 72

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	hasher    service.PasswordHasher
	events    accountEvents
	validate  *validator.Validate
	dummyHash string
	logger    *slog.Logger
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	AuthRepo  repository.AuthRepository
	Hasher    service.PasswordHasher
	Publisher service.EventPublisher `optional:"true"`
	Logger    *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(params CredentialServiceParams) (usecase.CredentialUsecase, error) {
	// Compared against when the username is unknown so both failure paths cost one bcrypt check.
	dummyHash, err := params.Hasher.Hash("secretwall-timing-equalizer")
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare dummy password hash")
	}

	return &credentialService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		authRepo:  params.AuthRepo,
		hasher:    params.Hasher,
		events:    accountEvents{publisher: params.Publisher, now: time.Now},
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		dummyHash: dummyHash,
		logger:    params.Logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a user with a local account inside one transaction. Surrounding
// whitespace is not part of a username.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if input != nil {
		trimmed := *input
		trimmed.Username = strings.TrimSpace(input.Username)
		input = &trimmed
	}
	if err := srv.validateRegister(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		ID: newUserID(),
		Account: entity.LocalAccount{
			Username:     input.Username,
			PasswordHash: hash,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.NewAuthRepository()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeLocal, input.Username)
		if err == nil {
			return domainerrors.ErrDuplicateUsername
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		if err := authRepo.CreateAuthentication(ctx, entity.NewAuthentication(user.ID, user.Account)); err != nil {
			if errors.Is(err, repository.ErrAuthAlreadyExists) {
				return domainerrors.ErrDuplicateUsername
			}

			return errors.Wrap(err, "failed to create authentication")
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateUsername) {
			srv.log(ctx).Info("Username already registered", slog.String("username", input.Username))
		} else {
			srv.log(ctx).Error("Registration failed", slog.Any("error", err))
		}

		return nil, errors.Wrap(err, "registration failed")
	}

	srv.log(ctx).Info("User registered", slog.Any("user_id", user.ID))
	srv.events.emit(ctx, srv.log(ctx), entity.AccountEventUserRegistered, user)

	return user, nil
}

func (srv *credentialService) validateRegister(input *usecase.RegisterInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("missing input")
	}
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}
	if len(input.Password) > maxPasswordBytes {
		return domainerrors.ErrValidationFailed.WithDetails("password exceeds 72 bytes")
	}

	return nil
}

// Verify checks a local username/password pair.
func (srv *credentialService) Verify(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrInvalidCredentials
	}
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeLocal, username)
	if errors.Is(err, repository.ErrAuthNotFound) {
		srv.hasher.Check(input.Password, srv.dummyHash)
		srv.log(ctx).Info("Login with unknown username", slog.String("username", username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		srv.log(ctx).Error("Failed to find authentication", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(input.Password, auth.PasswordHash) {
		srv.log(ctx).Info("Login with wrong password", slog.Any("user_id", auth.UserID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Authentication without user", slog.Any("user_id", auth.UserID))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
