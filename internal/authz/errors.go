// ABOUTME: Sentinel errors for the authz package.
// ABOUTME: All four are programmer errors; callers must treat any of them as a deny.
package authz

import "errors"

// Lookup errors. These indicate a typo or a stale reference to a removed
// role/permission, not a runtime condition. Authorization call sites must
// map every error to "deny" — a failed lookup is never an implicit grant.
var (
	ErrUnknownRole       = errors.New("authz: unknown role")
	ErrUnknownPermission = errors.New("authz: unknown permission")
	ErrUnknownUserType   = errors.New("authz: unknown user type")
	ErrUnknownRule       = errors.New("authz: unknown business rule")
	ErrInvalidLevel      = errors.New("authz: hierarchy level out of range")
)
