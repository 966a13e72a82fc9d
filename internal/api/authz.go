// ABOUTME: The policy API — decision checks plus read-only introspection of roles,
// ABOUTME: permissions, user-type access policies, and business rule constants.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
)

// registerAuthzRoutes wires up the policy endpoints on the huma API.
//
//	POST /authz/check                      — decision: do these roles hold this permission?
//	GET  /authz/roles                      — the full effective grant table
//	GET  /authz/roles/{role}               — one role's level, domain, and grants
//	GET  /authz/permissions/{permission}   — a permission's domain and minimum level
//	GET  /authz/user-types/{user_type}     — declarative access policy record
//	GET  /authz/rules                      — business rule constants
func registerAuthzRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "check-permission",
		Method:      http.MethodPost,
		Path:        "/authz/check",
		Summary:     "Check a permission",
		Description: "Decides whether an actor holding the given roles may exercise the given permission.",
		Tags:        []string{"Decisions"},
	}, checkPermissionHandler)

	huma.Register(api, huma.Operation{
		OperationID: "list-roles",
		Method:      http.MethodGet,
		Path:        "/authz/roles",
		Summary:     "List roles",
		Description: "Returns every role with its hierarchy level and effective permission grants.",
		Tags:        []string{"Registry"},
	}, listRolesHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-role",
		Method:      http.MethodGet,
		Path:        "/authz/roles/{role}",
		Summary:     "Get a role",
		Tags:        []string{"Registry"},
	}, getRoleHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-permission",
		Method:      http.MethodGet,
		Path:        "/authz/permissions/{permission}",
		Summary:     "Get a permission",
		Description: "Returns a permission's functional domain and the minimum hierarchy level required to exercise it.",
		Tags:        []string{"Registry"},
	}, getPermissionHandler)

	huma.Register(api, huma.Operation{
		OperationID: "get-user-type-policy",
		Method:      http.MethodGet,
		Path:        "/authz/user-types/{user_type}",
		Summary:     "Get a user-type access policy",
		Description: "Returns the declarative row-visibility policy data-access code must honour for this user type.",
		Tags:        []string{"Policies"},
	}, getUserTypePolicyHandler)

	huma.Register(api, huma.Operation{
		OperationID: "list-business-rules",
		Method:      http.MethodGet,
		Path:        "/authz/rules",
		Summary:     "List business rule constants",
		Tags:        []string{"Policies"},
	}, listBusinessRulesHandler)
}

// ── Decision ─────────────────────────────────────────────────────────────────

type checkPermissionInput struct {
	Body struct {
		Roles      []string `json:"roles" minItems:"1" doc:"Role names held by the actor"`
		Permission string   `json:"permission" doc:"Permission token to check"`
	}
}

type checkPermissionOutput struct {
	Body struct {
		Allowed           bool   `json:"allowed"`
		MatchedRole       string `json:"matched_role,omitempty" doc:"First role that held the permission, when allowed"`
		RequiredLevel     int    `json:"required_level"`
		RequiredLevelName string `json:"required_level_name"`
	}
}

func checkPermissionHandler(_ context.Context, in *checkPermissionInput) (*checkPermissionOutput, error) {
	perm, err := authz.ParsePermission(in.Body.Permission)
	if err != nil {
		decisionsTotal.WithLabelValues("deny").Inc()
		return nil, huma.Error422UnprocessableEntity("unknown permission")
	}

	roles := make([]authz.Role, 0, len(in.Body.Roles))
	for _, name := range in.Body.Roles {
		role, err := authz.ParseRole(name)
		if err != nil {
			decisionsTotal.WithLabelValues("deny").Inc()
			return nil, huma.Error422UnprocessableEntity("unknown role")
		}
		roles = append(roles, role)
	}

	allowed, matched, err := authz.AnyHasPermission(roles, perm)
	if err != nil {
		// Both tokens were validated above; reaching here is a table bug.
		decisionsTotal.WithLabelValues("deny").Inc()
		return nil, huma.Error403Forbidden("access denied")
	}
	minLevel, err := authz.MinimumLevelFor(perm)
	if err != nil {
		decisionsTotal.WithLabelValues("deny").Inc()
		return nil, huma.Error403Forbidden("access denied")
	}

	if allowed {
		decisionsTotal.WithLabelValues("allow").Inc()
	} else {
		decisionsTotal.WithLabelValues("deny").Inc()
	}

	out := &checkPermissionOutput{}
	out.Body.Allowed = allowed
	out.Body.MatchedRole = string(matched)
	out.Body.RequiredLevel = int(minLevel)
	out.Body.RequiredLevelName = minLevel.String()
	return out, nil
}

// ── Registry ─────────────────────────────────────────────────────────────────

// RoleDetail is the API representation of one role's registry entry.
type RoleDetail struct {
	Role              string   `json:"role"`
	Level             int      `json:"level"`
	LevelName         string   `json:"level_name"`
	UserType          string   `json:"user_type"`
	StakeholderDomain string   `json:"stakeholder_domain"`
	Permissions       []string `json:"permissions"`
}

func roleDetail(r authz.Role) (RoleDetail, error) {
	level, err := authz.LevelOf(r)
	if err != nil {
		return RoleDetail{}, err
	}
	userType, err := authz.UserTypeOf(r)
	if err != nil {
		return RoleDetail{}, err
	}
	domain, err := authz.StakeholderDomainFor(r)
	if err != nil {
		return RoleDetail{}, err
	}
	grants, err := authz.Grants(r)
	if err != nil {
		return RoleDetail{}, err
	}
	perms := grants.Sorted()
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return RoleDetail{
		Role:              string(r),
		Level:             int(level),
		LevelName:         level.String(),
		UserType:          string(userType),
		StakeholderDomain: string(domain),
		Permissions:       names,
	}, nil
}

type listRolesOutput struct {
	Body struct {
		Roles []RoleDetail `json:"roles"`
	}
}

func listRolesHandler(_ context.Context, _ *struct{}) (*listRolesOutput, error) {
	out := &listRolesOutput{}
	for _, r := range authz.Roles() {
		detail, err := roleDetail(r)
		if err != nil {
			return nil, huma.Error500InternalServerError("role registry inconsistent")
		}
		out.Body.Roles = append(out.Body.Roles, detail)
	}
	return out, nil
}

type getRoleInput struct {
	Role string `path:"role" doc:"Role name"`
}

type getRoleOutput struct {
	Body RoleDetail
}

func getRoleHandler(_ context.Context, in *getRoleInput) (*getRoleOutput, error) {
	role, err := authz.ParseRole(in.Role)
	if err != nil {
		return nil, huma.Error404NotFound("unknown role")
	}
	detail, err := roleDetail(role)
	if err != nil {
		return nil, huma.Error500InternalServerError("role registry inconsistent")
	}
	return &getRoleOutput{Body: detail}, nil
}

type getPermissionInput struct {
	Permission string `path:"permission" doc:"Permission token"`
}

type getPermissionOutput struct {
	Body struct {
		Permission       string `json:"permission"`
		Category         string `json:"category"`
		MinimumLevel     int    `json:"minimum_level"`
		MinimumLevelName string `json:"minimum_level_name"`
	}
}

func getPermissionHandler(_ context.Context, in *getPermissionInput) (*getPermissionOutput, error) {
	perm, err := authz.ParsePermission(in.Permission)
	if err != nil {
		return nil, huma.Error404NotFound("unknown permission")
	}
	category, err := authz.CategoryOf(perm)
	if err != nil {
		return nil, huma.Error404NotFound("unknown permission")
	}
	minLevel, err := authz.MinimumLevelFor(perm)
	if err != nil {
		return nil, huma.Error404NotFound("unknown permission")
	}
	out := &getPermissionOutput{}
	out.Body.Permission = string(perm)
	out.Body.Category = string(category)
	out.Body.MinimumLevel = int(minLevel)
	out.Body.MinimumLevelName = minLevel.String()
	return out, nil
}

// ── Policies ─────────────────────────────────────────────────────────────────

type getUserTypePolicyInput struct {
	UserType string `path:"user_type" doc:"User type tag"`
}

type getUserTypePolicyOutput struct {
	Body authz.AccessPolicy
}

func getUserTypePolicyHandler(_ context.Context, in *getUserTypePolicyInput) (*getUserTypePolicyOutput, error) {
	userType, err := authz.ParseUserType(in.UserType)
	if err != nil {
		if errors.Is(err, authz.ErrUnknownUserType) {
			return nil, huma.Error404NotFound("unknown user type")
		}
		return nil, err
	}
	policy, err := authz.AccessPolicyFor(userType)
	if err != nil {
		return nil, huma.Error404NotFound("unknown user type")
	}
	return &getUserTypePolicyOutput{Body: policy}, nil
}

type listBusinessRulesOutput struct {
	Body struct {
		Rules map[string]any `json:"rules"`
	}
}

func listBusinessRulesHandler(_ context.Context, _ *struct{}) (*listBusinessRulesOutput, error) {
	out := &listBusinessRulesOutput{}
	out.Body.Rules = make(map[string]any, len(authz.RuleNames()))
	for _, name := range authz.RuleNames() {
		v, err := authz.RuleByName(name)
		if err != nil {
			return nil, huma.Error500InternalServerError("rule table inconsistent")
		}
		out.Body.Rules[name] = v
	}
	return out, nil
}
