package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/config"
)

// ErrSnapshotAbsent is returned when no blob exists under the requested key.
var ErrSnapshotAbsent = errors.New("snapshot absent")

// SnapshotStore is the opaque key/blob persistence boundary. Collections are
// serialized by the caller; the store never inspects blob contents.
type SnapshotStore interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// RedisSnapshotStore backs the boundary with Redis.
type RedisSnapshotStore struct {
	Client *redis.Client
}

// NewRedisSnapshotStore connects to Redis using the provided configuration.
// An unreachable Redis is logged as a warning, not a startup failure.
func NewRedisSnapshotStore(cfg config.RedisConfig, logger *zap.Logger) *RedisSnapshotStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &RedisSnapshotStore{Client: client}
}

// Save stores a blob under key. No TTL: snapshots live until removed.
func (s *RedisSnapshotStore) Save(ctx context.Context, key string, blob []byte) error {
	if s == nil || s.Client == nil {
		return errors.New("redis client not configured")
	}
	return s.Client.Set(ctx, key, blob, 0).Err()
}

// Load returns the blob under key, or ErrSnapshotAbsent.
func (s *RedisSnapshotStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("redis client not configured")
	}
	blob, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotAbsent
	}
	return blob, err
}

// Remove deletes the blob under key. Absent keys are a no-op.
func (s *RedisSnapshotStore) Remove(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return errors.New("redis client not configured")
	}
	return s.Client.Del(ctx, key).Err()
}

// Close closes the client.
func (s *RedisSnapshotStore) Close() {
	if s != nil && s.Client != nil {
		_ = s.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return errors.New("redis client not configured")
	}
	return s.Client.Ping(ctx).Err()
}
