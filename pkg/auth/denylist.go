package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shashiranjanraj/stockly/pkg/cache"
)

// The original design treated logout as purely client-side credential
// removal, leaving an unexpired token replayable from another client.
// Revoke closes that hole: the token's signature hash goes into a Redis
// denylist for its remaining lifetime, and Verify callers consult
// IsRevoked before trusting the claims.
//
// When Redis is unavailable the denylist degrades open, matching the
// cache package's no-op contract.

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "stockly:revoked:" + hex.EncodeToString(sum[:])
}

// Revoke invalidates token server-side until its expiry elapses.
// Tokens that no longer verify need no denylist entry.
func Revoke(ctx context.Context, token string) error {
	claims, ok := Verify(token)
	if !ok {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	return cache.Set(ctx, denylistKey(token), true, remaining)
}

// IsRevoked reports whether token has been revoked by a logout.
func IsRevoked(ctx context.Context, token string) bool {
	return cache.Exists(ctx, denylistKey(token))
}
