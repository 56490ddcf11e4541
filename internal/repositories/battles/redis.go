package battles

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	redisclient "github.com/dmforge/initiative-api/internal/redis"
)

const (
	// Key patterns:
	//   battle:{id}           - battle document, TTL bound
	//   battle:owner:{owner}  - set of the owner's battle ids
	//   battle:active:{owner} - id of the owner's active battle
	// battle:active:all is the set of every active battle id, backing
	// the public "latest active battle" lookup.
	battleKeyPrefix = "battle:"
	ownerKeyPrefix  = "battle:owner:"
	activeKeyPrefix = "battle:active:"
	activeAllKey    = "battle:active:all"

	defaultTTL = 8 * time.Hour

	errBattleNil   = "battle cannot be nil"
	errIDEmpty     = "battle ID cannot be empty"
	errOwnerEmpty  = "owner ID cannot be empty"
	errNotFoundMsg = "battle not found"
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

// NewRedisRepository creates a new Redis repository for battles
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
	battle, ttl, err := r.prepare(input.Battle, input.TTL)
	if err != nil {
		return nil, err
	}

	if err := r.store(ctx, battle, ttl); err != nil {
		return nil, err
	}

	return &CreateOutput{Battle: battle}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	battle, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Battle: battle}, nil
}

func (r *redisRepository) GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	battleID, err := r.client.Get(ctx, activeKeyPrefix+input.OwnerID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("no active battle")
		}
		return nil, errors.Wrap(err, "failed to read active battle pointer")
	}

	battle, err := r.fetch(ctx, battleID)
	if err != nil {
		if errors.IsNotFound(err) {
			// Pointer outlived the battle document.
			_ = r.client.Del(ctx, activeKeyPrefix+input.OwnerID)
		}
		return nil, err
	}
	return &GetActiveOutput{Battle: battle}, nil
}

func (r *redisRepository) GetLatestActive(ctx context.Context, _ GetLatestActiveInput) (*GetLatestActiveOutput, error) {
	ids, err := r.client.SMembers(ctx, activeAllKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read active battle set")
	}

	var latest *entities.Battle
	for _, id := range ids {
		battle, err := r.fetch(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				// Battle expired under the index entry.
				_ = r.client.SRem(ctx, activeAllKey, id)
				continue
			}
			return nil, err
		}
		if latest == nil || battle.UpdatedAt.After(latest.UpdatedAt) {
			latest = battle
		}
	}

	if latest == nil {
		return nil, errors.NotFound("no active battle")
	}
	return &GetLatestActiveOutput{Battle: latest}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	battle, ttl, err := r.prepare(input.Battle, input.TTL)
	if err != nil {
		return nil, err
	}

	exists, err := r.client.Exists(ctx, battleKeyPrefix+battle.ID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check battle existence")
	}
	if exists == 0 {
		return nil, errors.NotFound(errNotFoundMsg)
	}

	if err := r.store(ctx, battle, ttl); err != nil {
		return nil, err
	}

	return &UpdateOutput{Battle: battle}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	battle, err := r.fetch(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, battleKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerKeyPrefix+battle.OwnerID, input.ID)
	pipe.SRem(ctx, activeAllKey, input.ID)
	if battle.IsActive {
		pipe.Del(ctx, activeKeyPrefix+battle.OwnerID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete battle")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListForOwner(ctx context.Context, input ListForOwnerInput) (*ListForOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	indexKey := ownerKeyPrefix + input.OwnerID
	battleIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read owner index")
	}

	battles := make([]*entities.Battle, 0, len(battleIDs))
	for _, id := range battleIDs {
		battle, err := r.fetch(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				// Battle expired; prune the stale index entry.
				_ = r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		battles = append(battles, battle)
	}

	return &ListForOwnerOutput{Battles: battles}, nil
}

func (r *redisRepository) prepare(battle *entities.Battle, ttl time.Duration) (*entities.Battle, time.Duration, error) {
	if battle == nil {
		return nil, 0, errors.InvalidArgument(errBattleNil)
	}
	if battle.ID == "" {
		return nil, 0, errors.InvalidArgument(errIDEmpty)
	}
	if battle.OwnerID == "" {
		return nil, 0, errors.InvalidArgument(errOwnerEmpty)
	}

	if ttl == 0 {
		ttl = defaultTTL
	}

	now := r.clock.Now()
	battle.UpdatedAt = now
	battle.ExpiresAt = now.Add(ttl)
	return battle, ttl, nil
}

// store writes the battle document and keeps the owner index and active
// pointer consistent with its flags, all in one transaction.
func (r *redisRepository) store(ctx context.Context, battle *entities.Battle, ttl time.Duration) error {
	battleJSON, err := json.Marshal(battle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal battle")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, battleKeyPrefix+battle.ID, battleJSON, ttl)
	pipe.SAdd(ctx, ownerKeyPrefix+battle.OwnerID, battle.ID)
	if battle.IsActive {
		pipe.Set(ctx, activeKeyPrefix+battle.OwnerID, battle.ID, ttl)
		pipe.SAdd(ctx, activeAllKey, battle.ID)
	} else {
		pipe.SRem(ctx, activeAllKey, battle.ID)
		// Clear the pointer only if it still names this battle.
		current, getErr := r.client.Get(ctx, activeKeyPrefix+battle.OwnerID).Result()
		if getErr == nil && current == battle.ID {
			pipe.Del(ctx, activeKeyPrefix+battle.OwnerID)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store battle")
	}
	return nil
}

func (r *redisRepository) fetch(ctx context.Context, id string) (*entities.Battle, error) {
	battleJSON, err := r.client.Get(ctx, battleKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errNotFoundMsg)
		}
		return nil, errors.Wrap(err, "failed to get battle from Redis")
	}

	var battle entities.Battle
	if err := json.Unmarshal([]byte(battleJSON), &battle); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle")
	}
	return &battle, nil
}
