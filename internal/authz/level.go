// ABOUTME: Hierarchy levels — the ordered integer ranks used for coarse access gating.
// ABOUTME: Parse at the boundary with ParseLevel; comparators assume a valid Level.
package authz

import "fmt"

// Level is a seniority rank in the chapter hierarchy. Higher values carry
// strictly more privilege; >= comparison is the only coarse gating mechanism.
type Level int

// Hierarchy levels, ordered from least to most privileged.
const (
	LevelNone          Level = 0 // no role assigned
	LevelMember        Level = 1 // Yi member or trainer
	LevelCoordinator   Level = 2 // external institution coordinator
	LevelCoChair       Level = 3 // co-chair / vertical chair
	LevelChair         Level = 4 // chapter chair
	LevelExecutive     Level = 5 // executive committee
	LevelNationalAdmin Level = 6 // national administrator
)

// ParseLevel validates an integer rank from an external source (claims, URL,
// CLI flag). Out-of-range values are a caller bug and fail loudly with
// ErrInvalidLevel; they are never clamped.
func ParseLevel(n int) (Level, error) {
	if n < int(LevelNone) || n > int(LevelNationalAdmin) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}
	return Level(n), nil
}

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelMember:
		return "member"
	case LevelCoordinator:
		return "coordinator"
	case LevelCoChair:
		return "co_chair"
	case LevelChair:
		return "chair"
	case LevelExecutive:
		return "executive"
	case LevelNationalAdmin:
		return "national_admin"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Satisfies reports whether the actor's level meets the required threshold.
func (l Level) Satisfies(required Level) bool { return l >= required }

// IsAdmin reports whether the level grants chapter administration (Chair and up).
func (l Level) IsAdmin() bool { return l >= LevelChair }

// IsLeadership reports whether the level is part of chapter leadership (Co-Chair and up).
func (l Level) IsLeadership() bool { return l >= LevelCoChair }

// IsCoordinator reports whether the level is exactly the coordinator tier.
// Coordinators are a distinct tier, not a minimum: Chair is not a coordinator.
func (l Level) IsCoordinator() bool { return l == LevelCoordinator }
