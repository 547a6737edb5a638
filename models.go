package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Status        UserStatus `bun:"status,notnull" json:"status,omitempty"`
	Admin         bool       `bun:"is_admin" json:"admin"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus backfills the status for legacy rows created before the
// column existed.
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

// IsAdmin reports the admin flag.
func (u *User) IsAdmin() bool {
	return u.Admin
}

// IsPending reports whether the account still awaits activation.
func (u *User) IsPending() bool {
	return u.Status == UserStatusPending
}

// IsBlocked reports whether the account has been locked out.
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// Sanitize enforces the submitted-profile policy: only profile fields
// survive. Identifier, hash, status, admin flag, and timestamps are reset so
// a registration payload can never set them. Email is lowercased, the phone
// number normalized to E.164 when it parses.
func (u *User) Sanitize() *User {
	u.ID = uuid.Nil
	u.PasswordHash = ""
	u.Status = ""
	u.Admin = false
	u.CreatedAt = nil
	u.UpdatedAt = nil
	u.DeletedAt = nil

	u.Email = NormalizeEmail(u.Email)
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Phone = normalizePhone(u.Phone)

	return u
}

// PublicProfile returns a copy safe for API responses: same record minus the
// password hash.
func (u *User) PublicProfile() *User {
	profile := *u
	profile.PasswordHash = ""
	return &profile
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	num, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return phone
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
