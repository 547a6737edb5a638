package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// UserTracker is the slice of the Users repository the provider needs.
type UserTracker interface {
	GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*User, error)
	GetByUUID(ctx context.Context, id uuid.UUID, criteria ...repository.SelectCriteria) (*User, error)
}

// UserProvider resolves identities against the user store.
type UserProvider struct {
	store  UserTracker
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserTracker) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity finds the user by email and compares the password. The
// check order is fixed: unknown email and wrong password both surface
// ErrInvalidCredentials so the two cases cannot be told apart, pending and
// blocked accounts are rejected before the hash comparison runs.
func (u UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	user.EnsureStatus()
	if err := statusAuthError(user.Status); err != nil {
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return identityFromUser(user), nil
}

// FindIdentityByUUID resolves the identity a verified token points at.
// Status is NOT re-checked here: a bearer token stays usable until it
// expires even if the account is blocked after issuance.
func (u UserProvider) FindIdentityByUUID(ctx context.Context, id uuid.UUID) (Identity, error) {
	user, err := u.FindUserByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

// FindUserByUUID returns the full user record for a verified token subject.
func (u UserProvider) FindUserByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := u.store.GetByUUID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during token resolution")
	}

	user.EnsureStatus()

	return user, nil
}

type authIdentity struct {
	id     string
	email  string
	admin  bool
	status UserStatus
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) IsAdmin() bool {
	return a.admin
}

func (a authIdentity) Status() UserStatus {
	if a.status == "" {
		return UserStatusActive
	}
	return a.status
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:     user.ID.String(),
		email:  user.Email,
		admin:  user.Admin,
		status: user.Status,
	}
}
