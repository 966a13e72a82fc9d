// ABOUTME: RequireAuthenticated middleware for JWT session cookie or Bearer auth.
// ABOUTME: Validates role names against the authz registry before injecting context.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/auth"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
)

// RequireAuthenticated returns a middleware that requires a valid session
// token, either as a session_token cookie or an Authorization: Bearer header.
// On success it injects the actor's ID, validated roles, highest hierarchy
// level, chapter, and (for external coordinators) institution into the
// request context.
//
// A session carrying any role name outside the registry is rejected outright:
// a stale role is indistinguishable from tampering, and a failed lookup must
// never become an implicit grant.
func (srv *Server) RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				cookie, err := r.Cookie("session_token")
				if err != nil {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				tokenStr = cookie.Value
			}

			claims, err := auth.ParseSessionToken(tokenStr, []byte(srv.cfg.JWTSecret))
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			roles := make([]authz.Role, 0, len(claims.Roles))
			for _, name := range claims.Roles {
				role, err := authz.ParseRole(name)
				if err != nil {
					slog.Warn("session carries unknown role", "role", name, "user_id", claims.UserID)
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				roles = append(roles, role)
			}

			level, err := authz.HighestLevel(roles)
			if err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxRoles, roles)
			ctx = context.WithValue(ctx, ctxChapterID, claims.ChapterID)
			ctx = context.WithValue(ctx, ctxLevel, level)
			if claims.InstitutionID != nil {
				ctx = context.WithValue(ctx, ctxInstitutionID, *claims.InstitutionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
