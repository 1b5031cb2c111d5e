package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps one session blob per key in redis. A nil client
// degrades every operation to "nothing stored": session state then lives only
// in memory, which is acceptable because the auth service remains the source
// of truth.
type RedisBlobStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisBlobStore(client *redis.Client, key string, ttl time.Duration) *RedisBlobStore {
	return &RedisBlobStore{client: client, key: key, ttl: ttl}
}

func (s *RedisBlobStore) Get(ctx context.Context) ([]byte, error) {
	if s.client == nil {
		return nil, ErrNoStoredState
	}
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoStoredState
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, blob []byte) error {
	if s.client == nil {
		return nil
	}
	return s.client.Set(ctx, s.key, blob, s.ttl).Err()
}

func (s *RedisBlobStore) Remove(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.key).Err()
}

// NewRedisClient connects to redis with a short probe timeout and returns nil
// when the server is unreachable, so callers degrade instead of failing
// startup.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// MemoryBlobStore is the in-process fallback, also used by tests.
type MemoryBlobStore struct {
	mu   sync.Mutex
	blob []byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

func (s *MemoryBlobStore) Get(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.blob == nil {
		return nil, ErrNoStoredState
	}
	out := make([]byte, len(s.blob))
	copy(out, s.blob)
	return out, nil
}

func (s *MemoryBlobStore) Set(ctx context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = make([]byte, len(blob))
	copy(s.blob, blob)
	return nil
}

func (s *MemoryBlobStore) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = nil
	return nil
}
