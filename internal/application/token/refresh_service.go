// Package token keeps the provider session token fresh. The token lives in a
// shared store so every instance sees the same credential; a periodic job
// refreshes it before it expires instead of waiting for a 401.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
	"go.uber.org/zap"
)

// RefreshService refreshes the provider session token ahead of expiry.
type RefreshService struct {
	client       provider.Client
	store        provider.SessionTokenStore
	ttl          time.Duration
	refreshAhead time.Duration
	logger       *zap.Logger
}

// NewRefreshService creates a refresh service. ttl is the lifetime assigned to
// newly minted tokens; refreshAhead is how long before expiry a token is
// considered stale.
func NewRefreshService(client provider.Client, store provider.SessionTokenStore, ttl, refreshAhead time.Duration, logger *zap.Logger) *RefreshService {
	return &RefreshService{
		client:       client,
		store:        store,
		ttl:          ttl,
		refreshAhead: refreshAhead,
		logger:       logger,
	}
}

// EnsureFresh refreshes the stored token when it is missing, expired, or
// within the refresh-ahead window. Returns true when a new token was minted.
func (s *RefreshService) EnsureFresh(ctx context.Context) (bool, error) {
	current, err := s.store.Get(ctx)
	switch {
	case err == nil:
		if time.Until(current.ExpiresAt) > s.refreshAhead {
			return false, nil
		}
	case errors.Is(err, provider.ErrTokenUnavailable):
		// fall through to refresh
	default:
		return false, fmt.Errorf("read session token: %w", err)
	}

	minted, err := s.client.CreateToken(ctx)
	if err != nil {
		return false, fmt.Errorf("create session token: %w", err)
	}
	if minted.ExpiresAt.IsZero() {
		minted.ExpiresAt = time.Now().Add(s.ttl)
	}
	if err := s.store.Put(ctx, minted); err != nil {
		return false, fmt.Errorf("store session token: %w", err)
	}

	s.logger.Info("provider session token refreshed",
		zap.Time("expires_at", minted.ExpiresAt),
	)
	return true, nil
}
