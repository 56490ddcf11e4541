package groups

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	redisclient "github.com/dmforge/initiative-api/internal/redis"
)

const (
	// Key patterns:
	//   group:{id}          - group document
	//   group:owner:{owner} - set of the owner's group ids
	groupKeyPrefix = "group:"
	ownerKeyPrefix = "group:owner:"

	errGroupNil    = "group cannot be nil"
	errIDEmpty     = "group ID cannot be empty"
	errOwnerEmpty  = "owner ID cannot be empty"
	errNotFoundMsg = "group not found"
)

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

// NewRedisRepository creates a new Redis repository for player groups
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
	group, err := r.validate(input.Group)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	if err := r.store(ctx, group); err != nil {
		return nil, err
	}
	return &CreateOutput{Group: group}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	group, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Group: group}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	group, err := r.validate(input.Group)
	if err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, groupKeyPrefix+group.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check group existence")
	}
	if exists == 0 {
		return nil, errors.NotFound(errNotFoundMsg)
	}

	group.UpdatedAt = r.clock.Now()
	if err := r.store(ctx, group); err != nil {
		return nil, err
	}
	return &UpdateOutput{Group: group}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	group, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, groupKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerKeyPrefix+group.OwnerID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete group")
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListForOwner(ctx context.Context, input ListForOwnerInput) (*ListForOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	ids, err := r.client.SMembers(ctx, ownerKeyPrefix+input.OwnerID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read owner index")
	}

	out := make([]*entities.PlayerGroup, 0, len(ids))
	for _, id := range ids {
		group, err := r.fetch(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				_ = r.client.SRem(ctx, ownerKeyPrefix+input.OwnerID, id)
				continue
			}
			return nil, err
		}
		out = append(out, group)
	}
	return &ListForOwnerOutput{Groups: out}, nil
}

func (r *redisRepository) validate(group *entities.PlayerGroup) (*entities.PlayerGroup, error) {
	if group == nil {
		return nil, errors.InvalidArgument(errGroupNil)
	}
	if group.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if group.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}
	return group, nil
}

func (r *redisRepository) store(ctx context.Context, group *entities.PlayerGroup) error {
	groupJSON, err := json.Marshal(group)
	if err != nil {
		return errors.Wrap(err, "failed to marshal group")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, groupKeyPrefix+group.ID, groupJSON, 0)
	pipe.SAdd(ctx, ownerKeyPrefix+group.OwnerID, group.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store group")
	}
	return nil
}

func (r *redisRepository) fetch(ctx context.Context, id string) (*entities.PlayerGroup, error) {
	groupJSON, err := r.client.Get(ctx, groupKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFoundMsg)
		}
		return nil, errors.Wrap(err, "failed to get group from Redis")
	}

	var group entities.PlayerGroup
	if err := json.Unmarshal([]byte(groupJSON), &group); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal group")
	}
	return &group, nil
}
