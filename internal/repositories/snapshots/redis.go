package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	engineerr "github.com/KirkDiggler/gameplay-effects/internal/errors"
	"github.com/KirkDiggler/gameplay-effects/internal/uuid"
)

// DefaultTTL is how long a snapshot lives when no TTL is configured
const DefaultTTL = 24 * time.Hour

// RedisConfig holds the dependencies of the Redis repository
type RedisConfig struct {
	Client        redis.UniversalClient
	TimeProvider  TimeProvider
	UUIDGenerator uuid.Generator
	TTL           time.Duration
}

type redisRepo struct {
	client        redis.UniversalClient
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
	ttl           time.Duration
}

// NewRedis creates a Redis-backed snapshot repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, engineerr.InvalidArgument("redis config is required")
	}
	if cfg.Client == nil {
		return nil, engineerr.InvalidArgument("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	uuidGenerator := cfg.UUIDGenerator
	if uuidGenerator == nil {
		uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepo{
		client:        cfg.Client,
		timeProvider:  timeProvider,
		uuidGenerator: uuidGenerator,
		ttl:           ttl,
	}, nil
}

func snapshotKey(characterID string, turn int) string {
	return fmt.Sprintf("snapshot:%s:%d", characterID, turn)
}

func characterSnapshotsKey(characterID string) string {
	return fmt.Sprintf("character:%s:snapshots", characterID)
}

func (r *redisRepo) Save(ctx context.Context, snapshot *Snapshot) error {
	if snapshot == nil {
		return engineerr.InvalidArgument("snapshot cannot be nil")
	}
	if snapshot.CharacterID == "" {
		return engineerr.InvalidArgument("snapshot character ID is required")
	}

	if snapshot.ID == "" {
		snapshot.ID = r.uuidGenerator.New()
	}
	snapshot.CreatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, snapshotKey(snapshot.CharacterID, snapshot.Turn), string(jsonData), r.ttl)
	pipe.ZAdd(ctx, characterSnapshotsKey(snapshot.CharacterID), redis.Z{
		Score:  float64(snapshot.Turn),
		Member: strconv.Itoa(snapshot.Turn),
	})
	pipe.Expire(ctx, characterSnapshotsKey(snapshot.CharacterID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return engineerr.Wrapf(err, "failed to save snapshot for %s turn %d", snapshot.CharacterID, snapshot.Turn).
			WithMeta("character_id", snapshot.CharacterID)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, characterID string, turn int) (*Snapshot, error) {
	jsonData, err := r.client.Get(ctx, snapshotKey(characterID, turn)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, engineerr.NotFoundf("snapshot for %s turn %d not found", characterID, turn).
				WithMeta("character_id", characterID).
				WithMeta("turn", turn)
		}
		return nil, engineerr.Wrapf(err, "failed to get snapshot for %s turn %d", characterID, turn)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(jsonData, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}

// ListByCharacter skips index entries whose snapshot has already expired
func (r *redisRepo) ListByCharacter(ctx context.Context, characterID string) ([]*Snapshot, error) {
	members, err := r.client.ZRange(ctx, characterSnapshotsKey(characterID), 0, -1).Result()
	if err != nil {
		return nil, engineerr.Wrapf(err, "failed to list snapshots for %s", characterID)
	}

	turns := make([]int, len(members))
	for i, member := range members {
		turn, err := strconv.Atoi(member)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot index entry %q: %w", member, err)
		}
		turns[i] = turn
	}

	loaded := make([]*Snapshot, len(turns))

	g, gctx := errgroup.WithContext(ctx)
	for i, turn := range turns {
		i, turn := i, turn
		g.Go(func() error {
			snapshot, err := r.Get(gctx, characterID, turn)
			if err != nil {
				if engineerr.IsNotFound(err) {
					return nil
				}
				return err
			}
			loaded[i] = snapshot
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*Snapshot, 0, len(loaded))
	for _, snapshot := range loaded {
		if snapshot != nil {
			result = append(result, snapshot)
		}
	}
	return result, nil
}

func (r *redisRepo) DeleteByCharacter(ctx context.Context, characterID string) error {
	indexKey := characterSnapshotsKey(characterID)
	members, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return engineerr.Wrapf(err, "failed to list snapshots for %s", characterID)
	}

	keys := make([]string, 0, len(members)+1)
	for _, member := range members {
		keys = append(keys, fmt.Sprintf("snapshot:%s:%s", characterID, member))
	}
	keys = append(keys, indexKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return engineerr.Wrapf(err, "failed to delete snapshots for %s", characterID)
	}

	return nil
}
