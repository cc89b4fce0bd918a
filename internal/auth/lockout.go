package auth

import (
	"time"

	"github.com/spec-kit/console-service/internal/domain"
)

// LockoutPolicy implements the failed-attempt block with lazy expiry.
// Nothing proactively clears a block; expiry is checked at the next login
// attempt, and while blocked no attempt consumes the counter.
type LockoutPolicy struct {
	MaxAttempts   int
	BlockDuration time.Duration
}

// NewLockoutPolicy applies sane defaults for non-positive values.
func NewLockoutPolicy(maxAttempts int, blockDuration time.Duration) LockoutPolicy {
	if maxAttempts <= 0 {
		maxAttempts = domain.MaxFailedAttempts
	}
	if blockDuration <= 0 {
		blockDuration = 15 * time.Minute
	}
	return LockoutPolicy{MaxAttempts: maxAttempts, BlockDuration: blockDuration}
}

// IsStillBlocked reports whether a blocked account's window is still open.
// An expired block means the next attempt is evaluated as if unblocked,
// though the stored flag and counter only reset on a successful login.
func (p LockoutPolicy) IsStillBlocked(user *domain.User, now time.Time) bool {
	if !user.IsBlocked || user.LastFailedAttempt == nil {
		return false
	}
	return now.Sub(*user.LastFailedAttempt) < p.BlockDuration
}
