// Package persist stores FX matrix snapshots in Redis.
package persist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/fxmatrix"
	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when no snapshot is stored under a name.
var ErrNotFound = errors.New("persist: snapshot not found")

// Store saves snapshots as JSON strings under prefix+name, and keeps the set
// of saved names under prefix+"names".
type Store struct {
	client redis.Cmdable
	prefix string
}

// NewStore returns a store using client. prefix is prepended to every key.
func NewStore(client redis.Cmdable, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Connect opens a client on addr and checks the connection.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

func (s *Store) key(name string) string { return s.prefix + "snapshot:" + name }
func (s *Store) namesKey() string       { return s.prefix + "names" }

// Save stores snap under name. A zero ttl keeps it forever.
func (s *Store) Save(ctx context.Context, name string, snap *fxmatrix.Immutable, ttl time.Duration) error {
	if name == "" {
		return fmt.Errorf("save: %w: empty snapshot name", fxmatrix.ErrInvalidArgument)
	}
	data, err := snap.MarshalJSON()
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := s.client.Set(ctx, s.key(name), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	if err := s.client.SAdd(ctx, s.namesKey(), name).Err(); err != nil {
		return fmt.Errorf("redis sadd: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (*fxmatrix.Immutable, error) {
	val, err := s.client.Get(ctx, s.key(name)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("load %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	snap, err := fxmatrix.UnmarshalImmutable([]byte(val))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return snap, nil
}

// Delete removes the snapshot stored under name. Deleting a missing snapshot
// is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	if err := s.client.SRem(ctx, s.namesKey(), name).Err(); err != nil {
		return fmt.Errorf("redis srem: %w", err)
	}
	return nil
}

// Names returns the names of the saved snapshots in ascending order. Names
// of expired snapshots may still be listed.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.namesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	slices.Sort(names)
	return names, nil
}
