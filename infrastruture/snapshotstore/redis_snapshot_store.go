package snapshotstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "mazegen"

	snapshotKeyFmt = "%s:snapshot:%s"
	lockKeyFmt     = "%s:snapshot:%s:lock"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// RedisSnapshotStore keeps the latest step snapshot of each session in Redis.
// Writers to the same session are serialised with a redsync mutex so an older
// snapshot never overwrites a newer one from another instance.
type RedisSnapshotStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

var _ i.SnapshotStore = &RedisSnapshotStore{}

// NewRedisSnapshotStore initializes a store whose entries expire after ttlSeconds.
func NewRedisSnapshotStore(client *redis.Client, ttlSeconds int) (*RedisSnapshotStore, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("invalid snapshot ttl: %d", ttlSeconds)
	}

	return &RedisSnapshotStore{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Put stores snap unless a snapshot with more steps is already present.
func (s *RedisSnapshotStore) Put(ctx context.Context, sessionID uuid.UUID, snap *maze.Snapshot) error {
	mutex := s.locker.NewMutex(fmt.Sprintf(lockKeyFmt, s.prefix, sessionID))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := s.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		return err
	}
	if current != nil && current.Seed == snap.Seed && current.Steps > snap.Steps {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err()
}

// Get returns the stored snapshot of a session.
func (s *RedisSnapshotStore) Get(ctx context.Context, sessionID uuid.UUID) (*maze.Snapshot, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}

	var snap maze.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes the stored snapshot of a session, if any.
func (s *RedisSnapshotStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *RedisSnapshotStore) key(sessionID uuid.UUID) string {
	return fmt.Sprintf(snapshotKeyFmt, s.prefix, sessionID)
}
