package domain

import "testing"

func TestCanCreateBug(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleTester, true},
		{RoleDeveloper, false},
		{Role("guest"), false},
	}
	for _, tc := range cases {
		if got := CanCreateBug(tc.role); got != tc.want {
			t.Errorf("CanCreateBug(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanEditBug(t *testing.T) {
	cases := []struct {
		role    Role
		isOwner bool
		want    bool
	}{
		{RoleAdmin, false, true},
		{RoleDeveloper, false, true},
		{RoleTester, true, true},
		{RoleTester, false, false},
		{Role("guest"), true, false},
	}
	for _, tc := range cases {
		if got := CanEditBug(tc.role, tc.isOwner); got != tc.want {
			t.Errorf("CanEditBug(%s, owner=%v) = %v, want %v", tc.role, tc.isOwner, got, tc.want)
		}
	}
}

func TestCanCloseBug(t *testing.T) {
	cases := []struct {
		role       Role
		isAssignee bool
		want       bool
	}{
		{RoleAdmin, false, true},
		{RoleDeveloper, true, true},
		{RoleDeveloper, false, false},
		{RoleTester, true, false},
		{RoleTester, false, false},
	}
	for _, tc := range cases {
		if got := CanCloseBug(tc.role, tc.isAssignee); got != tc.want {
			t.Errorf("CanCloseBug(%s, assignee=%v) = %v, want %v", tc.role, tc.isAssignee, got, tc.want)
		}
	}
}

func TestAdminOnlyActions(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleDeveloper, RoleTester} {
		want := role == RoleAdmin
		if got := CanDeleteBug(role); got != want {
			t.Errorf("CanDeleteBug(%s) = %v, want %v", role, got, want)
		}
		if got := CanSetAssignee(role); got != want {
			t.Errorf("CanSetAssignee(%s) = %v, want %v", role, got, want)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !BugStatus("in_progress").IsValid() || BugStatus("reopened").IsValid() {
		t.Fatalf("status validity broken")
	}
	if !BugPriority("critical").IsValid() || BugPriority("urgent").IsValid() {
		t.Fatalf("priority validity broken")
	}
	if !Role("tester").IsValid() || Role("client").IsValid() {
		t.Fatalf("role validity broken")
	}
}
