// ABOUTME: The closed permission catalog — fine-grained capability tokens grouped by functional domain.
// ABOUTME: parsePermission rejects tokens outside the catalog; no permissions are created at runtime.
package authz

import (
	"fmt"
	"sort"
)

// Permission is a named capability token from the closed catalog.
type Permission string

// Category is the functional domain a permission (or a row category in an
// access policy) belongs to. Some categories, such as assessments, carry no
// permission tokens and exist only for row-visibility policies.
type Category string

// Functional domains.
const (
	CategoryMembers        Category = "members"
	CategoryEvents         Category = "events"
	CategoryStakeholders   Category = "stakeholders"
	CategoryBookings       Category = "bookings"
	CategoryOpportunities  Category = "opportunities"
	CategoryMaterials      Category = "materials"
	CategoryAssessments    Category = "assessments"
	CategoryFinance        Category = "finance"
	CategoryReports        Category = "reports"
	CategoryVerticals      Category = "verticals"
	CategorySubChapters    Category = "sub_chapters"
	CategoryCommunications Category = "communications"
	CategoryKnowledgeBase  Category = "knowledge_base"
	CategoryAwards         Category = "awards"
	CategoryAdministration Category = "administration"
)

// Permission tokens, grouped by domain.
const (
	// Members
	PermViewMembers   Permission = "view_members"
	PermManageMembers Permission = "manage_members"

	// Events
	PermViewEvents   Permission = "view_events"
	PermManageEvents Permission = "manage_events"

	// Stakeholder CRM
	PermViewStakeholders   Permission = "view_stakeholders"
	PermManageStakeholders Permission = "manage_stakeholders"

	// Session bookings
	PermViewBookings    Permission = "view_bookings"
	PermManageBookings  Permission = "manage_bookings"
	PermApproveBookings Permission = "approve_bookings"

	// Opportunities
	PermViewOpportunities   Permission = "view_opportunities"
	PermApplyOpportunities  Permission = "apply_opportunities"
	PermManageOpportunities Permission = "manage_opportunities"

	// Training materials
	PermViewMaterials    Permission = "view_materials"
	PermSubmitMaterials  Permission = "submit_materials"
	PermApproveMaterials Permission = "approve_materials"

	// Finance
	PermViewFinance     Permission = "view_finance"
	PermManageFinance   Permission = "manage_finance"
	PermApproveExpenses Permission = "approve_expenses"

	// Reports
	PermViewReports   Permission = "view_reports"
	PermExportReports Permission = "export_reports"

	// Verticals
	PermViewVerticals   Permission = "view_verticals"
	PermManageVerticals Permission = "manage_verticals"

	// Sub-chapters
	PermViewSubChapters   Permission = "view_sub_chapters"
	PermManageSubChapters Permission = "manage_sub_chapters"

	// Communications
	PermViewCommunications Permission = "view_communications"
	PermSendCommunications Permission = "send_communications"

	// Knowledge base
	PermViewKnowledgeBase       Permission = "view_knowledge_base"
	PermContributeKnowledgeBase Permission = "contribute_knowledge_base"

	// Awards
	PermViewAwards          Permission = "view_awards"
	PermNominateAwards      Permission = "nominate_awards"
	PermApproveApplications Permission = "approve_applications"

	// Administration
	PermManageSettings   Permission = "manage_settings"
	PermViewAuditLogs    Permission = "view_audit_logs"
	PermManageRoles      Permission = "manage_roles"
	PermAssignRoles      Permission = "assign_roles"
	PermImpersonateUsers Permission = "impersonate_users"
)

// permissionCategories is the catalog: every token and its functional domain.
// Membership in this map defines token validity everywhere else.
var permissionCategories = map[Permission]Category{
	PermViewMembers:   CategoryMembers,
	PermManageMembers: CategoryMembers,

	PermViewEvents:   CategoryEvents,
	PermManageEvents: CategoryEvents,

	PermViewStakeholders:   CategoryStakeholders,
	PermManageStakeholders: CategoryStakeholders,

	PermViewBookings:    CategoryBookings,
	PermManageBookings:  CategoryBookings,
	PermApproveBookings: CategoryBookings,

	PermViewOpportunities:   CategoryOpportunities,
	PermApplyOpportunities:  CategoryOpportunities,
	PermManageOpportunities: CategoryOpportunities,

	PermViewMaterials:    CategoryMaterials,
	PermSubmitMaterials:  CategoryMaterials,
	PermApproveMaterials: CategoryMaterials,

	PermViewFinance:     CategoryFinance,
	PermManageFinance:   CategoryFinance,
	PermApproveExpenses: CategoryFinance,

	PermViewReports:   CategoryReports,
	PermExportReports: CategoryReports,

	PermViewVerticals:   CategoryVerticals,
	PermManageVerticals: CategoryVerticals,

	PermViewSubChapters:   CategorySubChapters,
	PermManageSubChapters: CategorySubChapters,

	PermViewCommunications: CategoryCommunications,
	PermSendCommunications: CategoryCommunications,

	PermViewKnowledgeBase:       CategoryKnowledgeBase,
	PermContributeKnowledgeBase: CategoryKnowledgeBase,

	PermViewAwards:          CategoryAwards,
	PermNominateAwards:      CategoryAwards,
	PermApproveApplications: CategoryAwards,

	PermManageSettings:   CategoryAdministration,
	PermViewAuditLogs:    CategoryAdministration,
	PermManageRoles:      CategoryAdministration,
	PermAssignRoles:      CategoryAdministration,
	PermImpersonateUsers: CategoryAdministration,
}

// ParsePermission validates a permission token from an external source.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if _, ok := permissionCategories[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, s)
	}
	return p, nil
}

// CategoryOf returns the functional domain of a permission.
func CategoryOf(p Permission) (Category, error) {
	c, ok := permissionCategories[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, p)
	}
	return c, nil
}

// Permissions returns every token in the catalog, sorted for stable iteration.
func Permissions() []Permission {
	out := make([]Permission, 0, len(permissionCategories))
	for p := range permissionCategories {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PermissionSet is an unordered set of permission tokens.
type PermissionSet map[Permission]struct{}

// Has reports set membership.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the set's members in lexical order.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// union returns a new set containing s plus every given permission.
func (s PermissionSet) union(perms ...Permission) PermissionSet {
	out := make(PermissionSet, len(s)+len(perms))
	for p := range s {
		out[p] = struct{}{}
	}
	for _, p := range perms {
		out[p] = struct{}{}
	}
	return out
}

// merge returns a new set containing the members of both sets.
func (s PermissionSet) merge(other PermissionSet) PermissionSet {
	out := make(PermissionSet, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

func setOf(perms ...Permission) PermissionSet {
	out := make(PermissionSet, len(perms))
	for _, p := range perms {
		out[p] = struct{}{}
	}
	return out
}
