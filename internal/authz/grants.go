// ABOUTME: Role→permission grant table, derived at init from per-tier deltas so that
// ABOUTME: higher levels are supersets of lower levels by construction, not convention.
package authz

import "fmt"

// The grant table is built bottom-up: each tier extends the one below it with
// an explicit delta. Editing a delta can widen or narrow a tier, but it cannot
// break the superset ordering between levels. Verify() asserts the ordering
// anyway so a future restructuring of this file gets caught immediately.
var rolePermissions = buildGrants()

func buildGrants() map[Role]PermissionSet {
	memberGrants := setOf(
		PermViewMembers,
		PermViewEvents,
		PermViewOpportunities,
		PermApplyOpportunities,
		PermViewMaterials,
		PermSubmitMaterials,
		PermViewVerticals,
		PermViewSubChapters,
		PermViewCommunications,
		PermViewKnowledgeBase,
		PermContributeKnowledgeBase,
		PermViewAwards,
		PermNominateAwards,
	)

	// Trainers additionally see the session-booking pipeline they deliver.
	trainerGrants := memberGrants.union(
		PermViewBookings,
	)

	// Institution coordinators book sessions and work the stakeholder CRM.
	// All three coordinator roles share one grant set; they differ only in
	// stakeholder domain, which drives row scoping, not capability.
	coordinatorGrants := trainerGrants.union(
		PermManageBookings,
		PermViewStakeholders,
		PermManageOpportunities,
	)

	// Vertical chairs run their vertical's programming.
	verticalChairGrants := coordinatorGrants.union(
		PermManageEvents,
		PermManageVerticals,
		PermApproveBookings,
		PermViewReports,
		PermSendCommunications,
	)

	// Co-chairs hold the approval queue plus day-to-day chapter management.
	coChairGrants := coordinatorGrants.union(
		PermApproveBookings,
		PermApproveMaterials,
		PermApproveExpenses,
		PermApproveApplications,
		PermManageMembers,
		PermManageEvents,
		PermManageStakeholders,
		PermViewFinance,
		PermViewReports,
		PermSendCommunications,
	)

	chairGrants := coChairGrants.merge(verticalChairGrants).union(
		PermManageFinance,
		PermManageSubChapters,
		PermExportReports,
		PermManageSettings,
		PermViewAuditLogs,
		PermAssignRoles,
	)

	// Executive gets the full catalog minus impersonation; national admin is
	// unconditional.
	executiveGrants := make(PermissionSet, len(permissionCategories))
	nationalAdminGrants := make(PermissionSet, len(permissionCategories))
	for p := range permissionCategories {
		nationalAdminGrants[p] = struct{}{}
		if p != PermImpersonateUsers {
			executiveGrants[p] = struct{}{}
		}
	}

	return map[Role]PermissionSet{
		RoleMember:              memberGrants,
		RoleTrainer:             trainerGrants,
		RoleSchoolCoordinator:   coordinatorGrants,
		RoleCollegeCoordinator:  coordinatorGrants,
		RoleIndustryCoordinator: coordinatorGrants,
		RoleVerticalChair:       verticalChairGrants,
		RoleCoChair:             coChairGrants,
		RoleChair:               chairGrants,
		RoleExecutive:           executiveGrants,
		RoleNationalAdmin:       nationalAdminGrants,
	}
}

// Grants returns the permission set of a role exactly as declared in the
// grant table. Unknown roles fail with ErrUnknownRole rather than returning
// an empty set, which would silently turn a typo into a universal deny.
func Grants(r Role) (PermissionSet, error) {
	set, ok := rolePermissions[r]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	return set, nil
}

// HasPermission reports whether role r holds permission p. Both the role and
// the permission must exist; a failed lookup means deny at the call site.
func HasPermission(r Role, p Permission) (bool, error) {
	if _, ok := permissionCategories[p]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	set, err := Grants(r)
	if err != nil {
		return false, err
	}
	return set.Has(p), nil
}

// AnyHasPermission reports whether any of the actor's roles holds permission p,
// and if so which role matched first, in the order the roles were given.
// Actors commonly hold several roles, e.g. trainer plus vertical chair.
func AnyHasPermission(roles []Role, p Permission) (bool, Role, error) {
	if _, ok := permissionCategories[p]; !ok {
		return false, "", fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	for _, r := range roles {
		set, err := Grants(r)
		if err != nil {
			return false, "", err
		}
		if set.Has(p) {
			return true, r, nil
		}
	}
	return false, "", nil
}
