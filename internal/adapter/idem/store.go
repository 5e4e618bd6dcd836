package idem

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers the entity id produced for a caller-supplied idempotency
// token, so a retried CreateOrder/RegisterPayment returns the original
// result instead of creating a duplicate.
type Store interface {
	Lookup(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, id int64) error
}

const keyPrefix = "idem:"

// RedisStore keeps tokens in redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Lookup returns the remembered id for the token, if any.
func (s *RedisStore) Lookup(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// Remember stores the id for the token.
func (s *RedisStore) Remember(ctx context.Context, key string, id int64) error {
	return s.client.Set(ctx, keyPrefix+key, strconv.FormatInt(id, 10), s.ttl).Err()
}

// MemoryStore is an in-process fallback used when no redis address is
// configured. Entries never expire; acceptable for a single instance.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]int64
}

// NewMemoryStore constructs empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]int64)}
}

// Lookup returns the remembered id for the token, if any.
func (s *MemoryStore) Lookup(_ context.Context, key string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.entries[key]
	return id, ok, nil
}

// Remember stores the id for the token.
func (s *MemoryStore) Remember(_ context.Context, key string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = id
	return nil
}
