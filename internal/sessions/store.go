package sessions

import (
	"context"
	"time"
)

// Store tracks tokens that were explicitly ended (logout, account
// deletion) before their natural expiry.
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
