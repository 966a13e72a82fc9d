// ABOUTME: Minimum-level classifier — maps each permission to the lowest hierarchy
// ABOUTME: level that may exercise it, via an ordered three-tier decision list.
package authz

import "fmt"

// Classifier tiers. The tiers are not declared mutually exclusive, so the
// evaluation order in MinimumLevelFor is load-bearing: administrative wins
// over approval wins over management, with Member as the fallback.
var (
	administrativePerms = setOf(
		PermManageSettings,
		PermViewAuditLogs,
		PermManageRoles,
		PermAssignRoles,
		PermImpersonateUsers,
	)

	approvalPerms = setOf(
		PermApproveBookings,
		PermApproveMaterials,
		PermApproveExpenses,
		PermApproveApplications,
	)

	managementPerms = setOf(
		PermManageMembers,
		PermManageEvents,
		PermManageStakeholders,
		PermManageBookings,
		PermManageOpportunities,
		PermManageFinance,
		PermManageVerticals,
		PermManageSubChapters,
		// Not manage_*-named, but both act on chapter-wide data rather than
		// the actor's own rows, so they sit above the member fallback.
		PermSendCommunications,
		PermExportReports,
	)
)

// MinimumLevelFor returns the lowest hierarchy level required to exercise a
// permission, independent of which roles happen to hold it. Used for audit
// and for UI affordances ("show this button only if level >= required").
func MinimumLevelFor(p Permission) (Level, error) {
	if _, ok := permissionCategories[p]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	switch {
	case administrativePerms.Has(p):
		return LevelChair, nil
	case approvalPerms.Has(p):
		return LevelCoChair, nil
	case managementPerms.Has(p):
		return LevelCoordinator, nil
	default:
		// view-type, apply-type, and nominate-type tokens
		return LevelMember, nil
	}
}
