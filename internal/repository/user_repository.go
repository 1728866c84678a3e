package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/todo-service/internal/domain"
)

// ErrNotFound signals an absent record in the store.
var ErrNotFound = errors.New("record not found")

const userKeyPrefix = "user:"

// Credential records are stored as one hash per username with the fields
// user_id, username and hashed_password, all text.
const (
	fieldUserID         = "user_id"
	fieldUsername       = "username"
	fieldHashedPassword = "hashed_password"
)

// UserRepository is the credential store adapter.
type UserRepository interface {
	Exists(ctx context.Context, username string) (bool, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Put(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	client *redis.Client
}

// NewUserRepository returns a Redis-backed implementation.
func NewUserRepository(client *redis.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	data, err := r.client.HGetAll(ctx, userKey(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return &domain.User{
		ID:           data[fieldUserID],
		Username:     data[fieldUsername],
		PasswordHash: data[fieldHashedPassword],
	}, nil
}

func (r *userRepository) Put(ctx context.Context, user *domain.User) error {
	return r.client.HSet(ctx, userKey(user.Username), map[string]interface{}{
		fieldUserID:         user.ID,
		fieldUsername:       user.Username,
		fieldHashedPassword: user.PasswordHash,
	}).Err()
}

func userKey(username string) string {
	return userKeyPrefix + username
}
