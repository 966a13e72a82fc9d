// ABOUTME: Unit tests for hierarchy levels, the role registry, and the
// ABOUTME: external-coordinator classifier. Pure logic tests — no server required.
package authz_test

import (
	"errors"
	"testing"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
)

// ─── Levels ──────────────────────────────────────────────────────────────────

func TestParseLevel_Valid(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 6; n++ {
		lvl, err := authz.ParseLevel(n)
		if err != nil {
			t.Fatalf("ParseLevel(%d): %v", n, err)
		}
		if int(lvl) != n {
			t.Errorf("ParseLevel(%d) = %d", n, lvl)
		}
	}
}

func TestParseLevel_OutOfRange(t *testing.T) {
	t.Parallel()
	for _, n := range []int{-1, 7, 100} {
		if _, err := authz.ParseLevel(n); !errors.Is(err, authz.ErrInvalidLevel) {
			t.Errorf("ParseLevel(%d) err = %v, want ErrInvalidLevel", n, err)
		}
	}
}

func TestLevelComparators(t *testing.T) {
	t.Parallel()
	if !authz.LevelChair.IsAdmin() {
		t.Error("Chair should be admin level")
	}
	if authz.LevelCoChair.IsAdmin() {
		t.Error("CoChair should not be admin level")
	}
	if !authz.LevelCoChair.IsLeadership() {
		t.Error("CoChair should be leadership level")
	}
	if authz.LevelCoordinator.IsLeadership() {
		t.Error("Coordinator should not be leadership level")
	}
	// Coordinator is an exact tier, not a threshold.
	if !authz.LevelCoordinator.IsCoordinator() {
		t.Error("Coordinator should be coordinator level")
	}
	if authz.LevelChair.IsCoordinator() {
		t.Error("Chair should not be coordinator level")
	}
}

func TestLevelSatisfies(t *testing.T) {
	t.Parallel()
	if !authz.LevelExecutive.Satisfies(authz.LevelChair) {
		t.Error("Executive should satisfy Chair")
	}
	if authz.LevelMember.Satisfies(authz.LevelCoordinator) {
		t.Error("Member should not satisfy Coordinator")
	}
	if !authz.LevelMember.Satisfies(authz.LevelMember) {
		t.Error("a level should satisfy itself")
	}
}

// ─── Role registry ───────────────────────────────────────────────────────────

func TestParseRole_Known(t *testing.T) {
	t.Parallel()
	r, err := authz.ParseRole("school_coordinator")
	if err != nil {
		t.Fatalf("ParseRole: %v", err)
	}
	if r != authz.RoleSchoolCoordinator {
		t.Errorf("ParseRole = %q", r)
	}
}

func TestParseRole_Unknown(t *testing.T) {
	t.Parallel()
	if _, err := authz.ParseRole("schoolcoordinator"); !errors.Is(err, authz.ErrUnknownRole) {
		t.Errorf("err = %v, want ErrUnknownRole", err)
	}
}

func TestLevelOf_TotalOverRegistry(t *testing.T) {
	t.Parallel()
	for _, r := range authz.Roles() {
		lvl, err := authz.LevelOf(r)
		if err != nil {
			t.Fatalf("LevelOf(%q): %v", r, err)
		}
		if lvl < authz.LevelMember || lvl > authz.LevelNationalAdmin {
			t.Errorf("LevelOf(%q) = %d, outside assignable range", r, lvl)
		}
	}
}

func TestLevelOf_Spot(t *testing.T) {
	t.Parallel()
	cases := map[authz.Role]authz.Level{
		authz.RoleMember:            authz.LevelMember,
		authz.RoleTrainer:           authz.LevelMember,
		authz.RoleSchoolCoordinator: authz.LevelCoordinator,
		authz.RoleVerticalChair:     authz.LevelCoChair,
		authz.RoleChair:             authz.LevelChair,
		authz.RoleNationalAdmin:     authz.LevelNationalAdmin,
	}
	for r, want := range cases {
		lvl, err := authz.LevelOf(r)
		if err != nil {
			t.Fatalf("LevelOf(%q): %v", r, err)
		}
		if lvl != want {
			t.Errorf("LevelOf(%q) = %v, want %v", r, lvl, want)
		}
	}
}

func TestHighestLevel(t *testing.T) {
	t.Parallel()
	lvl, err := authz.HighestLevel([]authz.Role{authz.RoleTrainer, authz.RoleVerticalChair})
	if err != nil {
		t.Fatalf("HighestLevel: %v", err)
	}
	if lvl != authz.LevelCoChair {
		t.Errorf("HighestLevel = %v, want CoChair", lvl)
	}

	lvl, err = authz.HighestLevel(nil)
	if err != nil {
		t.Fatalf("HighestLevel(nil): %v", err)
	}
	if lvl != authz.LevelNone {
		t.Errorf("HighestLevel(nil) = %v, want None", lvl)
	}

	if _, err := authz.HighestLevel([]authz.Role{authz.RoleChair, "bogus"}); !errors.Is(err, authz.ErrUnknownRole) {
		t.Errorf("err = %v, want ErrUnknownRole", err)
	}
}

// ─── External-coordinator classifier ─────────────────────────────────────────

func TestIsExternalCoordinator(t *testing.T) {
	t.Parallel()
	external := []authz.Role{
		authz.RoleSchoolCoordinator,
		authz.RoleCollegeCoordinator,
		authz.RoleIndustryCoordinator,
	}
	for _, r := range external {
		if !authz.IsExternalCoordinator(r) {
			t.Errorf("IsExternalCoordinator(%q) = false", r)
		}
	}
	for _, r := range []authz.Role{authz.RoleMember, authz.RoleTrainer, authz.RoleChair, authz.RoleVerticalChair} {
		if authz.IsExternalCoordinator(r) {
			t.Errorf("IsExternalCoordinator(%q) = true", r)
		}
	}
}

func TestStakeholderDomainFor(t *testing.T) {
	t.Parallel()
	cases := map[authz.Role]authz.StakeholderDomain{
		authz.RoleSchoolCoordinator:   authz.DomainSchool,
		authz.RoleCollegeCoordinator:  authz.DomainCollege,
		authz.RoleIndustryCoordinator: authz.DomainIndustry,
		authz.RoleChair:               authz.DomainNone,
		authz.RoleMember:              authz.DomainNone,
	}
	for r, want := range cases {
		got, err := authz.StakeholderDomainFor(r)
		if err != nil {
			t.Fatalf("StakeholderDomainFor(%q): %v", r, err)
		}
		if got != want {
			t.Errorf("StakeholderDomainFor(%q) = %q, want %q", r, got, want)
		}
	}
	if _, err := authz.StakeholderDomainFor("bogus"); !errors.Is(err, authz.ErrUnknownRole) {
		t.Errorf("err = %v, want ErrUnknownRole", err)
	}
}
