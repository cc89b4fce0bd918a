package domain

import "time"

// UserRole enumerates console access levels.
type UserRole string

const (
	UserRoleAgent      UserRole = "agent"
	UserRoleSupervisor UserRole = "supervisor"
	UserRoleAdmin      UserRole = "admin"
)

// MaxFailedAttempts is the lockout threshold. Reaching it blocks the account.
const MaxFailedAttempts = 3

// User is a console operator. PhoneNumber acts as the natural lookup key.
type User struct {
	ID                string     `json:"id"`
	PhoneNumber       string     `json:"phone_number"`
	Role              UserRole   `json:"role"`
	PasswordHash      string     `json:"-"`
	IsBlocked         bool       `json:"is_blocked"`
	FailedAttempts    int        `json:"failed_attempts"`
	LastFailedAttempt *time.Time `json:"last_failed_attempt,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// CanLogin reports whether the user may attempt authentication.
func (u *User) CanLogin() bool {
	return !u.IsBlocked && u.FailedAttempts < MaxFailedAttempts
}

// RegisterFailedAttempt bumps the counter and stamps the attempt time.
// The block flag flips together with the counter reaching the threshold,
// never independently.
func (u *User) RegisterFailedAttempt(now time.Time) {
	u.FailedAttempts++
	u.LastFailedAttempt = &now
	if u.FailedAttempts >= MaxFailedAttempts {
		u.IsBlocked = true
	}
}

// ResetFailedAttempts clears the counter and the attempt stamp.
func (u *User) ResetFailedAttempts() {
	u.FailedAttempts = 0
	u.LastFailedAttempt = nil
}

// Block forces the account into the blocked state.
func (u *User) Block() {
	u.IsBlocked = true
}

// Unblock clears the block and always resets the attempt counter with it.
func (u *User) Unblock() {
	u.IsBlocked = false
	u.ResetFailedAttempts()
}
