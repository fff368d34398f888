package domain

// Authorization policy: pure decision functions keyed by role and, where
// relevant, the actor's relationship to the bug (creator or assignee).
// Handlers and services consult these instead of scattering role checks.
//
//	action                     admin  developer        tester
//	create bug                 allow  deny             allow
//	edit fields (not assignee) allow  allow            only own bugs
//	set assignee               allow  deny             deny
//	close bug                  allow  only if assignee deny
//	delete bug                 allow  deny             deny

// CanCreateBug reports whether role may create bugs.
func CanCreateBug(role Role) bool {
	return role == RoleAdmin || role == RoleTester
}

// CanEditBug reports whether role may edit a bug's general fields.
// Testers may only edit bugs they created.
func CanEditBug(role Role, isOwner bool) bool {
	switch role {
	case RoleAdmin, RoleDeveloper:
		return true
	case RoleTester:
		return isOwner
	}
	return false
}

// CanSetAssignee reports whether role may change a bug's assignee.
// The general update endpoint silently drops the field when this is false;
// the dedicated assign endpoint rejects outright.
func CanSetAssignee(role Role) bool {
	return role == RoleAdmin
}

// CanCloseBug implements the close-gate: admins always, developers only
// when they are the current assignee, testers never.
func CanCloseBug(role Role, isAssignee bool) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleDeveloper:
		return isAssignee
	}
	return false
}

// CanDeleteBug reports whether role may delete bugs.
func CanDeleteBug(role Role) bool {
	return role == RoleAdmin
}
