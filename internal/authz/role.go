// ABOUTME: Role registry — one definition table mapping each role to its hierarchy
// ABOUTME: level, external stakeholder domain, and user type. parseRole rejects unknowns.
package authz

import (
	"fmt"
	"sort"
)

// Role is a named identity from the closed role enumeration.
type Role string

// Roles, ordered from least to most privileged.
const (
	RoleMember              Role = "member"
	RoleTrainer             Role = "trainer"
	RoleSchoolCoordinator   Role = "school_coordinator"
	RoleCollegeCoordinator  Role = "college_coordinator"
	RoleIndustryCoordinator Role = "industry_coordinator"
	RoleVerticalChair       Role = "vertical_chair"
	RoleCoChair             Role = "co_chair"
	RoleChair               Role = "chair"
	RoleExecutive           Role = "executive"
	RoleNationalAdmin       Role = "national_admin"
)

// StakeholderDomain tags the three externally-scoped coordinator roles with
// the stakeholder segment they belong to. DomainNone is a defined value, not
// an error: most roles legitimately have no stakeholder scoping.
type StakeholderDomain string

const (
	DomainNone     StakeholderDomain = "none"
	DomainSchool   StakeholderDomain = "school"
	DomainCollege  StakeholderDomain = "college"
	DomainIndustry StakeholderDomain = "industry"
)

// roleDef is the single source of truth for a role: its hierarchy level, its
// stakeholder domain, and the user type its access policy is keyed by. Level
// and role used to live in two tables kept in sync by hand; merging them makes
// role→level a total function by construction.
type roleDef struct {
	level    Level
	domain   StakeholderDomain
	userType UserType
}

var roleDefs = map[Role]roleDef{
	RoleMember:              {LevelMember, DomainNone, UserTypeYiMember},
	RoleTrainer:             {LevelMember, DomainNone, UserTypeTrainer},
	RoleSchoolCoordinator:   {LevelCoordinator, DomainSchool, UserTypeSchoolCoordinator},
	RoleCollegeCoordinator:  {LevelCoordinator, DomainCollege, UserTypeCollegeCoordinator},
	RoleIndustryCoordinator: {LevelCoordinator, DomainIndustry, UserTypeIndustryCoordinator},
	RoleVerticalChair:       {LevelCoChair, DomainNone, UserTypeVerticalChair},
	RoleCoChair:             {LevelCoChair, DomainNone, UserTypeChapterAdmin},
	RoleChair:               {LevelChair, DomainNone, UserTypeChapterAdmin},
	RoleExecutive:           {LevelExecutive, DomainNone, UserTypeChapterAdmin},
	RoleNationalAdmin:       {LevelNationalAdmin, DomainNone, UserTypeChapterAdmin},
}

// ParseRole validates a role name from an external source (claims, URL, CLI).
// Unknown names fail with ErrUnknownRole — never a silent least-privilege
// fallback, which would be indistinguishable from a real role with no grants.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleDefs[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Roles returns every role in the registry, ordered by level then name.
func Roles() []Role {
	out := make([]Role, 0, len(roleDefs))
	for r := range roleDefs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := roleDefs[out[i]], roleDefs[out[j]]
		if di.level != dj.level {
			return di.level < dj.level
		}
		return out[i] < out[j]
	})
	return out
}

// LevelOf returns the hierarchy level of a role.
func LevelOf(r Role) (Level, error) {
	def, ok := roleDefs[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	return def.level, nil
}

// UserTypeOf returns the user type a role's access policy is keyed by.
func UserTypeOf(r Role) (UserType, error) {
	def, ok := roleDefs[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	return def.userType, nil
}

// IsExternalCoordinator reports whether the role is an externally-scoped
// institution coordinator rather than an internal chapter role. Callers use
// this to decide whether institution-scoped row filtering applies.
func IsExternalCoordinator(r Role) bool {
	def, ok := roleDefs[r]
	return ok && def.domain != DomainNone
}

// StakeholderDomainFor returns the stakeholder domain a coordinator role is
// scoped to, or DomainNone for every other role.
func StakeholderDomainFor(r Role) (StakeholderDomain, error) {
	def, ok := roleDefs[r]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	return def.domain, nil
}

// HighestLevel returns the highest hierarchy level among the given roles, or
// LevelNone for an empty slice. Any unknown role fails the whole call.
func HighestLevel(roles []Role) (Level, error) {
	highest := LevelNone
	for _, r := range roles {
		lvl, err := LevelOf(r)
		if err != nil {
			return 0, err
		}
		if lvl > highest {
			highest = lvl
		}
	}
	return highest, nil
}
