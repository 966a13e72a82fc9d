// ABOUTME: Business rule constants — booking lead times, trainer workload caps, and
// ABOUTME: policy switches. Single source of truth; call sites never hardcode these.
package authz

import (
	"fmt"
	"sort"
)

// Business rule constants. These appear in multiple workflows (booking
// validation, trainer assignment, opportunity publication) and must be
// changed in exactly one place.
const (
	// SessionBookingAdvanceDays is the minimum lead time, in days, between
	// placing a session booking and the session date.
	SessionBookingAdvanceDays = 7

	// TrainerMaxSessionsPerMonth caps how many sessions a trainer may be
	// assigned in one calendar month.
	TrainerMaxSessionsPerMonth = 6

	// TrainerSessionsWarnThreshold is the monthly assignment count at which
	// the assignment UI starts warning about trainer workload.
	TrainerSessionsWarnThreshold = 5

	// MaterialsApprovalLeadDays is the minimum lead time, in days, for
	// submitting training materials ahead of the session they support.
	MaterialsApprovalLeadDays = 3

	// RequireMoUForOpportunities gates opportunity publication by industry
	// partners on an active memorandum of understanding.
	RequireMoUForOpportunities = true

	// AssessmentsPrivateToTrainer keeps each trainer's submitted assessments
	// invisible to other trainers.
	AssessmentsPrivateToTrainer = true
)

// businessRules keys each constant by its canonical screaming-snake name for
// callers that look rules up dynamically (the policy API, the CLI).
var businessRules = map[string]any{
	"SESSION_BOOKING_ADVANCE_DAYS":    SessionBookingAdvanceDays,
	"TRAINER_MAX_SESSIONS_PER_MONTH":  TrainerMaxSessionsPerMonth,
	"TRAINER_SESSIONS_WARN_THRESHOLD": TrainerSessionsWarnThreshold,
	"MATERIALS_APPROVAL_LEAD_DAYS":    MaterialsApprovalLeadDays,
	"REQUIRE_MOU_FOR_OPPORTUNITIES":   RequireMoUForOpportunities,
	"ASSESSMENTS_PRIVATE_TO_TRAINER":  AssessmentsPrivateToTrainer,
}

// RuleByName returns the business rule constant with the given canonical name.
func RuleByName(name string) (any, error) {
	v, ok := businessRules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return v, nil
}

// RuleNames returns the canonical names of every business rule, sorted.
func RuleNames() []string {
	out := make([]string, 0, len(businessRules))
	for name := range businessRules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
