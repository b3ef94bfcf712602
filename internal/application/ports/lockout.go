package ports

import "context"

// LoginLockoutStore tracks failed login attempts per email and locks
// further attempts after too many failures.
type LoginLockoutStore interface {
	IsLocked(ctx context.Context, email string) (locked bool, retryAfterSeconds int)
	RecordFailure(ctx context.Context, email string)
	RecordSuccess(ctx context.Context, email string)
}
