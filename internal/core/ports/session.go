package ports

import (
	"context"
	"time"
)

// SessionStore tracks revoked session token ids.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
