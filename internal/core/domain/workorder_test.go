package domain

import "testing"

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusInProgress, StatusCompleted, StatusVerified, StatusBlocked} {
		if !s.Valid() {
			t.Errorf("%s must be valid", s)
		}
	}
	if OrderStatus("ARCHIVED").Valid() {
		t.Error("unknown status must not be valid")
	}
	if OrderStatus("").Valid() {
		t.Error("empty status must not be valid")
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusBlocked, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusVerified, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusBlocked, true},
		{StatusInProgress, StatusVerified, false},
		{StatusCompleted, StatusVerified, true},
		{StatusCompleted, StatusPending, false},
		{StatusBlocked, StatusPending, true},
		{StatusBlocked, StatusInProgress, true},
		{StatusBlocked, StatusCompleted, false},
		// Terminal state: nothing follows VERIFIED.
		{StatusVerified, StatusPending, false},
		{StatusVerified, StatusCompleted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleWorker, RoleAuditor} {
		if !r.Valid() {
			t.Errorf("%s must be valid", r)
		}
	}
	if Role("ROOT").Valid() {
		t.Error("unknown role must not be valid")
	}
}

func TestUser_HasSecret(t *testing.T) {
	u := &User{}
	if u.HasSecret() {
		t.Error("empty hash must report no secret")
	}
	u.SecretHash = "$2a$10$abcdefghijklmnopqrstuv"
	if !u.HasSecret() {
		t.Error("non-empty hash must report a secret")
	}
}
