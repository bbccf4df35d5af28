package models

import "testing"

func TestNextStatus(t *testing.T) {
	tests := []struct {
		status  string
		next    string
		hasNext bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderDelivered, true},
		{OrderDelivered, "", false},
		{OrderCancelled, "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		next, hasNext := NextStatus(tt.status)
		if next != tt.next || hasNext != tt.hasNext {
			t.Errorf("NextStatus(%q) = %q, %v, want %q, %v",
				tt.status, next, hasNext, tt.next, tt.hasNext)
		}
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("admin role should report IsAdmin")
	}

	for _, role := range []string{RoleCustomer, "Admin", ""} {
		user := User{Role: role}
		if user.IsAdmin() {
			t.Errorf("role %q should not report IsAdmin", role)
		}
	}
}
