package auth

import "testing"

func TestUserStatusIsValid(t *testing.T) {
	valid := []UserStatus{UserStatusPending, UserStatusActive, UserStatusBlocked}
	for _, s := range valid {
		if !s.IsValid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	if UserStatus("SUSPENDED").IsValid() {
		t.Fatal("unknown status should not be valid")
	}
	if UserStatus("").IsValid() {
		t.Fatal("empty status should not be valid")
	}
}

func TestStatusAuthError(t *testing.T) {
	if err := statusAuthError(UserStatusActive); err != nil {
		t.Fatalf("active should pass, got %v", err)
	}
	if err := statusAuthError(UserStatusPending); err != ErrAccountPending {
		t.Fatalf("expected pending error, got %v", err)
	}
	if err := statusAuthError(UserStatusBlocked); err != ErrAccountBlocked {
		t.Fatalf("expected blocked error, got %v", err)
	}
	if err := statusAuthError(""); err != nil {
		t.Fatalf("empty status answers nil, got %v", err)
	}
}
