package auth

// UserStatus is the lifecycle state of an account.
type UserStatus string

const (
	// UserStatusPending marks an account that registered but was never
	// activated.
	UserStatusPending UserStatus = "PENDING"
	// UserStatusActive marks a fully usable account.
	UserStatusActive UserStatus = "ACTIVE"
	// UserStatusBlocked marks an account locked out by an administrator.
	UserStatusBlocked UserStatus = "BLOCKED"
)

// IsValid checks the status against the known set.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusBlocked:
		return true
	default:
		return false
	}
}

// statusAuthError maps a non-authenticatable status to its auth error.
// Active accounts (and the empty legacy value) yield nil.
func statusAuthError(status UserStatus) error {
	switch status {
	case UserStatusPending:
		return ErrAccountPending
	case UserStatusBlocked:
		return ErrAccountBlocked
	default:
		return nil
	}
}
