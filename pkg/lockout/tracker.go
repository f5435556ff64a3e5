// Package lockout blocks an email, and optionally the client IP, after
// repeated failed logins.
package lockout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds the lockout thresholds.
type Config struct {
	MaxAttempts   int
	AttemptWindow time.Duration
	BlockDuration time.Duration
	TrackIP       bool
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		TrackIP:       true,
	}
}

// Store is the counter backend.
type Store interface {
	// Incr bumps key and starts its TTL on the first hit.
	Incr(ctx context.Context, key string, ttl time.Duration) (int, error)
	// TTL is the time left on key; ok is false when it does not exist.
	TTL(ctx context.Context, key string) (time.Duration, bool, error)
	Set(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const (
	failUserPrefix    = "fail:login:user:"
	failIPPrefix      = "fail:login:ip:"
	blockedUserPrefix = "blocked:login:user:"
	blockedIPPrefix   = "blocked:login:ip:"
)

// Tracker counts failed logins and enforces blocks.
type Tracker struct {
	config Config
	store  Store
}

func NewTracker(config Config, store Store) *Tracker {
	return &Tracker{config: config, store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Blocked returns how long the email or IP stays blocked, zero if it is not.
func (t *Tracker) Blocked(ctx context.Context, email, ip string) (time.Duration, error) {
	keys := []string{blockedUserPrefix + normalizeEmail(email)}
	if t.config.TrackIP && ip != "" {
		keys = append(keys, blockedIPPrefix+ip)
	}

	var longest time.Duration
	for _, key := range keys {
		ttl, ok, err := t.store.TTL(ctx, key)
		if err != nil {
			return 0, err
		}
		if ok && ttl > longest {
			longest = ttl
		}
	}
	return longest, nil
}

// RecordFailure counts a failed login. It reports true once the attempt
// limit is reached and the block has been placed.
func (t *Tracker) RecordFailure(ctx context.Context, email, ip string) (bool, error) {
	email = normalizeEmail(email)
	count, err := t.store.Incr(ctx, failUserPrefix+email, t.config.AttemptWindow)
	if err != nil {
		return false, err
	}
	ipCount := 0
	if t.config.TrackIP && ip != "" {
		ipCount, _ = t.store.Incr(ctx, failIPPrefix+ip, t.config.AttemptWindow)
	}

	var errs []error
	blocked := false
	if count >= t.config.MaxAttempts {
		blocked = true
		errs = append(errs, t.store.Set(ctx, blockedUserPrefix+email, t.config.BlockDuration))
	}
	// One IP may try many emails; give it more room before blocking.
	if ipCount >= 2*t.config.MaxAttempts {
		blocked = true
		errs = append(errs, t.store.Set(ctx, blockedIPPrefix+ip, t.config.BlockDuration))
	}
	return blocked, errors.Join(errs...)
}

// Clear forgets the failures of a successful login.
func (t *Tracker) Clear(ctx context.Context, email, ip string) error {
	keys := []string{failUserPrefix + normalizeEmail(email)}
	if t.config.TrackIP && ip != "" {
		keys = append(keys, failIPPrefix+ip)
	}
	return t.store.Del(ctx, keys...)
}

// ============================================================================
// Redis
// ============================================================================

// INCR with TTL on first set, atomically.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`

type redisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int, error) {
	n, err := s.client.Eval(ctx, incrWithTTLScript, []string{key}, ttl.Milliseconds()).Int()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *redisStore) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}
	// -2: missing, -1: no expiry
	if ttl < 0 {
		return 0, false, nil
	}
	return ttl, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, key, "1", ttl).Err()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// ============================================================================
// Memory
// ============================================================================

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryStore keeps counters in process memory. It serves single-instance
// deployments without Redis.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if ok && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, ok
}

func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		e = memoryEntry{expiresAt: s.now().Add(ttl)}
	}
	e.count++
	s.entries[key] = e
	return e.count, nil
}

func (s *MemoryStore) TTL(_ context.Context, key string) (time.Duration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		return 0, false, nil
	}
	return e.expiresAt.Sub(s.now()), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{count: 1, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}
