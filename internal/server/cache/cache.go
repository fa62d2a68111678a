// Package cache holds the short-lived admin authentication state: revoked
// sessions and per-email login lockouts. Redis backs it in deployments
// and process memory backs it otherwise.
package cache

import (
	"context"
	"time"
)

// RevocationStore remembers sessions ended by logout until they would
// have expired anyway.
type RevocationStore interface {
	MarkRevoked(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// LockoutState is the failed-login record of one key.
type LockoutState struct {
	FailedCount int
	LockedUntil *time.Time
}

// Locked reports whether logins are refused at now.
func (s LockoutState) Locked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// LockoutStore counts failed logins and locks a key once threshold
// failures accumulate.
type LockoutStore interface {
	Get(ctx context.Context, key string) (LockoutState, error)
	RecordFailure(ctx context.Context, key string, now time.Time, threshold int, window time.Duration) (LockoutState, error)
	Clear(ctx context.Context, key string) error
}
