// ABOUTME: Declarative per-user-type access policies: visible/hidden row categories
// ABOUTME: plus free-text special rules. Source of truth for row scoping done elsewhere.
package authz

import (
	"fmt"
	"sort"
)

// UserType tags the external-facing classification of an actor. Several roles
// share the chapter_admin type; policies are keyed by type, not role.
type UserType string

const (
	UserTypeYiMember            UserType = "yi_member"
	UserTypeTrainer             UserType = "trainer"
	UserTypeSchoolCoordinator   UserType = "school_coordinator"
	UserTypeCollegeCoordinator  UserType = "college_coordinator"
	UserTypeIndustryCoordinator UserType = "industry_coordinator"
	UserTypeVerticalChair       UserType = "vertical_chair"
	UserTypeChapterAdmin        UserType = "chapter_admin"
)

// AccessPolicy declares which row categories a user type may see and the
// scoping rules data-access code must apply. The policy is descriptive: this
// package does not execute row filtering. Every query that should respect a
// rule cites it, so drift between declaration and enforcement shows up in
// review rather than in production.
type AccessPolicy struct {
	UserType     UserType   `json:"user_type"`
	Visible      []Category `json:"visible"`
	Hidden       []Category `json:"hidden"`
	SpecialRules []string   `json:"special_rules"`
}

var accessPolicies = map[UserType]AccessPolicy{
	UserTypeYiMember: {
		UserType: UserTypeYiMember,
		Visible: []Category{
			CategoryMembers, CategoryEvents, CategoryOpportunities,
			CategoryMaterials, CategoryVerticals, CategorySubChapters,
			CategoryCommunications, CategoryKnowledgeBase, CategoryAwards,
		},
		Hidden: []Category{
			CategoryFinance, CategoryStakeholders, CategoryAssessments,
			CategoryAdministration,
		},
		SpecialRules: []string{
			"Sees events and members of their own chapter only.",
			"May apply to published opportunities and nominate for awards.",
		},
	},
	UserTypeTrainer: {
		UserType: UserTypeTrainer,
		Visible: []Category{
			CategoryEvents, CategoryBookings, CategoryMaterials,
			CategoryAssessments, CategoryKnowledgeBase, CategoryCommunications,
		},
		Hidden: []Category{
			CategoryFinance, CategoryStakeholders, CategoryReports,
			CategoryAdministration,
		},
		SpecialRules: []string{
			"Sees only sessions assigned to them.",
			"Assessments submitted by other trainers are never visible.",
			"Assignment is capped at TRAINER_MAX_SESSIONS_PER_MONTH sessions per calendar month.",
		},
	},
	UserTypeSchoolCoordinator: {
		UserType: UserTypeSchoolCoordinator,
		Visible: []Category{
			CategoryBookings, CategoryEvents, CategoryMaterials,
		},
		Hidden: []Category{
			CategoryMembers, CategoryFinance, CategoryStakeholders,
			CategoryReports, CategoryAssessments, CategoryAdministration,
		},
		SpecialRules: []string{
			"Every row is filtered to the coordinator's own institution id.",
			"Session bookings must be placed at least SESSION_BOOKING_ADVANCE_DAYS days ahead.",
		},
	},
	UserTypeCollegeCoordinator: {
		UserType: UserTypeCollegeCoordinator,
		Visible: []Category{
			CategoryBookings, CategoryEvents, CategoryMaterials,
			CategoryOpportunities,
		},
		Hidden: []Category{
			CategoryMembers, CategoryFinance, CategoryStakeholders,
			CategoryReports, CategoryAssessments, CategoryAdministration,
		},
		SpecialRules: []string{
			"Every row is filtered to the coordinator's own institution id.",
			"Session bookings must be placed at least SESSION_BOOKING_ADVANCE_DAYS days ahead.",
		},
	},
	UserTypeIndustryCoordinator: {
		UserType: UserTypeIndustryCoordinator,
		Visible: []Category{
			CategoryOpportunities, CategoryEvents, CategoryBookings,
		},
		Hidden: []Category{
			CategoryMembers, CategoryFinance, CategoryStakeholders,
			CategoryReports, CategoryAssessments, CategoryAdministration,
		},
		SpecialRules: []string{
			"Every row is filtered to the coordinator's own institution id.",
			"May publish opportunities only while the institution's MoU is active.",
		},
	},
	UserTypeVerticalChair: {
		UserType: UserTypeVerticalChair,
		Visible: []Category{
			CategoryMembers, CategoryEvents, CategoryBookings,
			CategoryMaterials, CategoryReports, CategoryVerticals,
			CategoryCommunications, CategoryKnowledgeBase, CategoryAwards,
		},
		Hidden: []Category{
			CategoryFinance, CategoryAssessments, CategoryAdministration,
		},
		SpecialRules: []string{
			"Management actions are scoped to their own vertical.",
		},
	},
	UserTypeChapterAdmin: {
		UserType: UserTypeChapterAdmin,
		Visible: []Category{
			CategoryMembers, CategoryEvents, CategoryStakeholders,
			CategoryBookings, CategoryOpportunities, CategoryMaterials,
			CategoryAssessments, CategoryFinance, CategoryReports,
			CategoryVerticals, CategorySubChapters, CategoryCommunications,
			CategoryKnowledgeBase, CategoryAwards, CategoryAdministration,
		},
		Hidden: nil,
		SpecialRules: []string{
			"Impersonation is restricted to national administrators.",
		},
	},
}

// ParseUserType validates a user type tag from an external source.
func ParseUserType(s string) (UserType, error) {
	t := UserType(s)
	if _, ok := accessPolicies[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUserType, s)
	}
	return t, nil
}

// AccessPolicyFor returns the declarative policy record for a user type.
func AccessPolicyFor(t UserType) (AccessPolicy, error) {
	p, ok := accessPolicies[t]
	if !ok {
		return AccessPolicy{}, fmt.Errorf("%w: %q", ErrUnknownUserType, t)
	}
	return p, nil
}

// UserTypes returns every user type with a declared policy, sorted.
func UserTypes() []UserType {
	out := make([]UserType, 0, len(accessPolicies))
	for t := range accessPolicies {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
