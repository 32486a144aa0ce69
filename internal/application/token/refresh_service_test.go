package token

import (
	"context"
	"testing"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTokenClient is a mock implementation of the provider token call.
type MockTokenClient struct {
	mock.Mock
	provider.Client
}

func (m *MockTokenClient) CreateToken(ctx context.Context) (*provider.SessionToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SessionToken), args.Error(1)
}

// MockTokenStore is a mock implementation of provider.SessionTokenStore
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Get(ctx context.Context) (*provider.SessionToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SessionToken), args.Error(1)
}

func (m *MockTokenStore) Put(ctx context.Context, token *provider.SessionToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newRefreshService(client *MockTokenClient, store *MockTokenStore) *RefreshService {
	return NewRefreshService(client, store, 8*time.Hour, 30*time.Minute, zap.NewNop())
}

func TestRefreshService_EnsureFresh(t *testing.T) {
	t.Run("fresh token left alone", func(t *testing.T) {
		client := new(MockTokenClient)
		store := new(MockTokenStore)
		svc := newRefreshService(client, store)

		store.On("Get", mock.Anything).Return(&provider.SessionToken{
			Token:     "tok",
			ExpiresAt: time.Now().Add(2 * time.Hour),
		}, nil)

		refreshed, err := svc.EnsureFresh(context.Background())
		require.NoError(t, err)
		assert.False(t, refreshed)
		client.AssertNotCalled(t, "CreateToken", mock.Anything)
	})

	t.Run("missing token minted and stored", func(t *testing.T) {
		client := new(MockTokenClient)
		store := new(MockTokenStore)
		svc := newRefreshService(client, store)

		store.On("Get", mock.Anything).Return(nil, provider.ErrTokenUnavailable)
		client.On("CreateToken", mock.Anything).Return(&provider.SessionToken{Token: "fresh"}, nil)
		store.On("Put", mock.Anything, mock.MatchedBy(func(tok *provider.SessionToken) bool {
			return tok.Token == "fresh" && time.Until(tok.ExpiresAt) > 7*time.Hour
		})).Return(nil)

		refreshed, err := svc.EnsureFresh(context.Background())
		require.NoError(t, err)
		assert.True(t, refreshed)
		store.AssertExpectations(t)
	})

	t.Run("token inside refresh-ahead window replaced", func(t *testing.T) {
		client := new(MockTokenClient)
		store := new(MockTokenStore)
		svc := newRefreshService(client, store)

		store.On("Get", mock.Anything).Return(&provider.SessionToken{
			Token:     "stale",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}, nil)
		client.On("CreateToken", mock.Anything).Return(&provider.SessionToken{Token: "fresh"}, nil)
		store.On("Put", mock.Anything, mock.Anything).Return(nil)

		refreshed, err := svc.EnsureFresh(context.Background())
		require.NoError(t, err)
		assert.True(t, refreshed)
	})

	t.Run("mint failure propagates", func(t *testing.T) {
		client := new(MockTokenClient)
		store := new(MockTokenStore)
		svc := newRefreshService(client, store)

		store.On("Get", mock.Anything).Return(nil, provider.ErrTokenUnavailable)
		client.On("CreateToken", mock.Anything).Return(nil, provider.ErrRequestFailed)

		refreshed, err := svc.EnsureFresh(context.Background())
		assert.ErrorIs(t, err, provider.ErrRequestFailed)
		assert.False(t, refreshed)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})
}
