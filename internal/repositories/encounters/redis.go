package encounters

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
	//   encounter:{id}          - encounter document
	//   encounter:owner:{owner} - set of the owner's encounter ids
	encounterKeyPrefix = "encounter:"
	ownerKeyPrefix     = "encounter:owner:"

	errEncounterNil = "encounter cannot be nil"
	errIDEmpty      = "encounter ID cannot be empty"
	errOwnerEmpty   = "owner ID cannot be empty"
	errNotFoundMsg  = "encounter not found"
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

// NewRedisRepository creates a new Redis repository for encounters
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
	enc, err := r.validate(input.Encounter)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	enc.CreatedAt = now
	enc.UpdatedAt = now

	if err := r.store(ctx, enc); err != nil {
		return nil, err
	}
	return &CreateOutput{Encounter: enc}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	enc, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Encounter: enc}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	enc, err := r.validate(input.Encounter)
	if err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, encounterKeyPrefix+enc.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check encounter existence")
	}
	if exists == 0 {
		return nil, errors.NotFound(errNotFoundMsg)
	}

	enc.UpdatedAt = r.clock.Now()
	if err := r.store(ctx, enc); err != nil {
		return nil, err
	}
	return &UpdateOutput{Encounter: enc}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	enc, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, encounterKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerKeyPrefix+enc.OwnerID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete encounter")
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

	out := make([]*entities.Encounter, 0, len(ids))
	for _, id := range ids {
		enc, err := r.fetch(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				_ = r.client.SRem(ctx, ownerKeyPrefix+input.OwnerID, id)
				continue
			}
			return nil, err
		}
		out = append(out, enc)
	}
	return &ListForOwnerOutput{Encounters: out}, nil
}

func (r *redisRepository) validate(enc *entities.Encounter) (*entities.Encounter, error) {
	if enc == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if enc.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if enc.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}
	return enc, nil
}

func (r *redisRepository) store(ctx context.Context, enc *entities.Encounter) error {
	encJSON, err := json.Marshal(enc)
	if err != nil {
		return errors.Wrap(err, "failed to marshal encounter")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, encounterKeyPrefix+enc.ID, encJSON, 0)
	pipe.SAdd(ctx, ownerKeyPrefix+enc.OwnerID, enc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store encounter")
	}
	return nil
}

func (r *redisRepository) fetch(ctx context.Context, id string) (*entities.Encounter, error) {
	encJSON, err := r.client.Get(ctx, encounterKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFoundMsg)
		}
		return nil, errors.Wrap(err, "failed to get encounter from Redis")
	}

	var enc entities.Encounter
	if err := json.Unmarshal([]byte(encJSON), &enc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal encounter")
	}
	return &enc, nil
}
