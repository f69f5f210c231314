package auth

import (
	"context"
	"time"

	"github.com/wayandway/moneylog-backend/internal/cache"
)

const verificationTokenKeyPrefix = "verify:used:"

// TokenStoreInterface defines the interface for verification token bookkeeping.
type TokenStoreInterface interface {
	ConsumeVerificationToken(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// TokenStore marks email verification tokens as consumed in Redis so a
// verification link cannot be replayed within its validity window.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// ConsumeVerificationToken records the token ID as used. It returns false
// when the token was already consumed.
func (s *TokenStore) ConsumeVerificationToken(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	key := verificationTokenKeyPrefix + tokenID
	return s.cache.SetNX(ctx, key, []byte("1"), ttl)
}
