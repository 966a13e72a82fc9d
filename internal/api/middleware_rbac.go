// ABOUTME: RequirePermission and RequireLevel middleware — the RBAC gates that
// ABOUTME: pages and actions mount in front of their handlers.
package api

import (
	"log/slog"
	"net/http"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
)

// RequirePermission returns a middleware that admits the request only if at
// least one of the actor's roles holds the given permission. Any lookup
// failure is a deny.
//
// Must run after RequireAuthenticated.
func (srv *Server) RequirePermission(p authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roles, ok := r.Context().Value(ctxRoles).([]authz.Role)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			allowed, matched, err := authz.AnyHasPermission(roles, p)
			if err != nil || !allowed {
				if err != nil {
					// Programmer error (stale token in a route table); the
					// client only ever sees a generic denial.
					slog.Error("permission lookup failed", "permission", p, "error", err)
				} else {
					slog.Debug("permission denied", "permission", p, "roles", roles)
				}
				decisionsTotal.WithLabelValues("deny").Inc()
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			decisionsTotal.WithLabelValues("allow").Inc()
			slog.Debug("permission granted", "permission", p, "matched_role", matched)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLevel returns a middleware that admits the request only if the
// actor's highest hierarchy level satisfies min.
//
// Must run after RequireAuthenticated.
func (srv *Server) RequireLevel(min authz.Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level, ok := r.Context().Value(ctxLevel).(authz.Level)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !level.Satisfies(min) {
				decisionsTotal.WithLabelValues("deny").Inc()
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			decisionsTotal.WithLabelValues("allow").Inc()
			next.ServeHTTP(w, r)
		})
	}
}
