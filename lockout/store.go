package lockout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable wraps backend transport failures.
var ErrStoreUnavailable = errors.New("lockout: store unavailable")

// Record is one active lock.
type Record struct {
	LockedUntil time.Time `json:"lockedUntil"`
	Reason      string    `json:"reason"`
}

// Store persists lock records by identifier. Get returns nil with no
// error when no record exists.
type Store interface {
	Get(ctx context.Context, identifier string) (*Record, error)
	Put(ctx context.Context, identifier string, rec Record) error
	Delete(ctx context.Context, identifier string) error
}

// MemoryStore keeps lock records in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, identifier string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identifier]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, identifier string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[identifier] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identifier)
	return nil
}

// RedisStore persists lock records as JSON values with a TTL matching
// the lock, so Redis evicts them on its own even if Delete is never
// called.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store keyed "<prefix>:<identifier>".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(identifier string) string {
	return s.prefix + ":" + identifier
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (*Record, error) {
	raw, err := s.client.Get(ctx, s.key(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("lockout: decode record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, identifier string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("lockout: encode record: %w", err)
	}

	ttl := time.Until(rec.LockedUntil)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, s.key(identifier), raw, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, s.key(identifier)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
