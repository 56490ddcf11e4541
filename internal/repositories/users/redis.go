package users

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	redisclient "github.com/dmforge/initiative-api/internal/redis"
)

const (
	// Key patterns:
	//   user:{id}           - user document
	//   user:email:{email}  - email to id, lowercased for uniqueness
	userKeyPrefix  = "user:"
	emailKeyPrefix = "user:email:"

	errUserNil     = "user cannot be nil"
	errIDEmpty     = "user ID cannot be empty"
	errEmailReq    = "email cannot be empty"
	errNotFoundMsg = "user not found"
	errEmailDupe   = "email already registered"
)

// storedUser is the persisted shape. The entity hides the password hash
// from JSON serialization, so the repository maps it explicitly.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for users
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	user := input.User
	if user == nil {
		return nil, errors.InvalidArgument(errUserNil)
	}
	if user.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if user.Email == "" {
		return nil, errors.InvalidArgument(errEmailReq)
	}

	user.CreatedAt = r.clock.Now()

	// Claim the email first; SetNX makes the uniqueness check atomic.
	claimed, err := r.client.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim email")
	}
	if !claimed {
		return nil, errors.AlreadyExists(errEmailDupe)
	}

	userJSON, err := json.Marshal(storedUser{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal user")
	}

	if err := r.client.Set(ctx, userKeyPrefix+user.ID, userJSON, 0).Err(); err != nil {
		// Release the claim so the email is not stranded.
		_ = r.client.Del(ctx, emailKey(user.Email))
		return nil, errors.Wrap(err, "failed to store user")
	}

	return &CreateOutput{User: user}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	user, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{User: user}, nil
}

func (r *redisRepository) GetByEmail(ctx context.Context, input GetByEmailInput) (*GetByEmailOutput, error) {
	if input.Email == "" {
		return nil, errors.InvalidArgument(errEmailReq)
	}

	id, err := r.client.Get(ctx, emailKey(input.Email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFoundMsg)
		}
		return nil, errors.Wrap(err, "failed to resolve email")
	}

	user, err := r.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetByEmailOutput{User: user}, nil
}

func (r *redisRepository) fetch(ctx context.Context, id string) (*entities.User, error) {
	userJSON, err := r.client.Get(ctx, userKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFoundMsg)
		}
		return nil, errors.Wrap(err, "failed to get user from Redis")
	}

	var stored storedUser
	if err := json.Unmarshal([]byte(userJSON), &stored); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal user")
	}

	return &entities.User{
		ID:           stored.ID,
		Email:        stored.Email,
		Username:     stored.Username,
		PasswordHash: stored.PasswordHash,
		CreatedAt:    stored.CreatedAt,
	}, nil
}

func emailKey(email string) string {
	return emailKeyPrefix + strings.ToLower(email)
}
