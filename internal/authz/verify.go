// Package authz is the role, hierarchy, and permission model for Yi Connect.
//
// Everything in this package is a pure lookup against immutable tables built
// at init: the role registry, the derived role→permission grant table, the
// minimum-level classifier, per-user-type access policies, and business rule
// constants. There is no mutable state and no I/O, so concurrent callers need
// no coordination.
//
// Call [Verify] at startup (the serve command does) to assert the structural
// invariants the rest of the platform relies on.
package authz

import (
	"errors"
	"fmt"
)

// Verify asserts the structural invariants of the policy tables:
//
//   - every role has a non-empty grant set and a registered user-type policy
//   - hierarchy monotonicity: a role at a higher level holds a superset of
//     every lower-level role's permissions
//   - the classifier is total: every permission maps to exactly one tier
//
// A non-nil error means the tables were edited into an inconsistent state and
// the binary must not serve authorization decisions.
func Verify() error {
	var errs []error

	roles := Roles()
	for _, r := range roles {
		set, err := Grants(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(set) == 0 {
			errs = append(errs, fmt.Errorf("role %q has an empty grant set", r))
		}
		ut, err := UserTypeOf(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := AccessPolicyFor(ut); err != nil {
			errs = append(errs, fmt.Errorf("role %q: %w", r, err))
		}
	}

	// Monotonicity: level(r1) < level(r2) ⇒ grants(r2) ⊇ grants(r1).
	for _, lower := range roles {
		lowerLevel, _ := LevelOf(lower)
		lowerSet, _ := Grants(lower)
		for _, higher := range roles {
			higherLevel, _ := LevelOf(higher)
			if lowerLevel >= higherLevel {
				continue
			}
			higherSet, _ := Grants(higher)
			for p := range lowerSet {
				if !higherSet.Has(p) {
					errs = append(errs, fmt.Errorf(
						"hierarchy violation: %q (level %d) holds %q but %q (level %d) does not",
						lower, lowerLevel, p, higher, higherLevel))
				}
			}
		}
	}

	for _, p := range Permissions() {
		if _, err := MinimumLevelFor(p); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
