package ports

import (
	"context"
	"time"
)

// SessionStore tracks issued session ids so they can be revoked before the
// token expires.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Active(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeUser(ctx context.Context, userID string) error
}

// DemandCache holds per-tour order counts used by popularity ranking.
type DemandCache interface {
	Get(ctx context.Context) (map[string]int64, bool, error)
	Set(ctx context.Context, counts map[string]int64) error
	Invalidate(ctx context.Context) error
}

// InputValidator checks an input struct and returns *validation.Error on failure.
type InputValidator interface {
	Struct(i any) error
}
