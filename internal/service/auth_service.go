package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// defaultAccounts are the development accounts seeded at startup.
var defaultAccounts = []struct {
	Username string
	Password string
}{
	{Username: "testuser", Password: "testpass123"},
	{Username: "testuser2", Password: "testpass123"},
}

// AuthService coordinates login and account creation.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL(), logger),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password produce the identical error so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, invalidCredentials()
		}
		return "", time.Time{}, apperrors.NewStoreUnavailable(err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", time.Time{}, invalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Username, user.ID)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// CreateUser stores a new credential record unless the username is taken.
// The second return reports whether a record was created.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*domain.User, bool, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, false, apperrors.NewStoreUnavailable(err)
	}
	if exists {
		return nil, false, nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, false, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Put(ctx, user); err != nil {
		return nil, false, apperrors.NewStoreUnavailable(err)
	}
	return user, true, nil
}

// Bootstrap ensures the default development accounts exist. Accounts already
// present are skipped, so re-running never changes a stored user_id or digest.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	for _, account := range defaultAccounts {
		user, created, err := s.CreateUser(ctx, account.Username, account.Password)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info("seeded development account",
				zap.String("username", user.Username),
				zap.String("user_id", user.ID),
			)
		}
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func invalidCredentials() error {
	return apperrors.NewUnauthorized("incorrect username or password")
}
