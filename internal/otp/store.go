package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hirenow-api/internal/domain"
)

// ChallengeStore persists OTP challenges keyed by phone. Re-issuing for the
// same phone replaces the stored challenge, which gives the most-recent-wins
// verification semantics directly: an older code stops verifying the moment a
// newer one is issued.
type ChallengeStore interface {
	Put(ctx context.Context, challenge domain.OTPChallenge) error
	// Get returns the current challenge for phone, or nil when none exists.
	Get(ctx context.Context, phone string) (*domain.OTPChallenge, error)
}

const redisKeyPrefix = "otp:"

// RedisStore keeps challenges in Redis with a TTL matching the expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, challenge domain.OTPChallenge) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return errors.New("challenge already expired")
	}
	return s.client.Set(ctx, redisKeyPrefix+challenge.Phone, payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+phone).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal(payload, &challenge); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return &challenge, nil
}

// MemoryStore is an in-process store used in tests and Redis-less development.
// Expiry is enforced by the Manager, not the store.
type MemoryStore struct {
	mu         sync.RWMutex
	challenges map[string]domain.OTPChallenge
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{challenges: make(map[string]domain.OTPChallenge)}
}

func (s *MemoryStore) Put(_ context.Context, challenge domain.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.Phone] = challenge
	return nil
}

func (s *MemoryStore) Get(_ context.Context, phone string) (*domain.OTPChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[phone]
	if !ok {
		return nil, nil
	}
	return &challenge, nil
}
