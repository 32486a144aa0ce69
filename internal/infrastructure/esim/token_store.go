package esim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/redis/go-redis/v9"
)

// tokenKey is the Redis key holding the current provider session token
const tokenKey = "esim:provider:session_token"

// RedisTokenStore implements provider.SessionTokenStore on Redis so that all
// instances share one provider session token. The key TTL matches the token
// expiry, so an expired token simply disappears from the store.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new RedisTokenStore
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get returns the current session token
func (s *RedisTokenStore) Get(ctx context.Context) (*provider.SessionToken, error) {
	data, err := s.client.Get(ctx, tokenKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, provider.ErrTokenUnavailable
		}
		return nil, fmt.Errorf("token store: %w", err)
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("token store: corrupt token entry: %w", err)
	}
	if !stored.ExpiresAt.IsZero() && time.Now().After(stored.ExpiresAt) {
		return nil, provider.ErrTokenUnavailable
	}

	return &provider.SessionToken{Token: stored.Token, ExpiresAt: stored.ExpiresAt}, nil
}

// Put stores a session token with its expiry
func (s *RedisTokenStore) Put(ctx context.Context, token *provider.SessionToken) error {
	data, err := json.Marshal(storedToken{Token: token.Token, ExpiresAt: token.ExpiresAt})
	if err != nil {
		return fmt.Errorf("token store: %w", err)
	}

	var ttl time.Duration
	if !token.ExpiresAt.IsZero() {
		ttl = time.Until(token.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("token store: token already expired")
		}
	}

	if err := s.client.Set(ctx, tokenKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("token store: %w", err)
	}
	return nil
}

// Ensure RedisTokenStore implements the session token store interface
var _ provider.SessionTokenStore = (*RedisTokenStore)(nil)
