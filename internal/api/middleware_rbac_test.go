// ABOUTME: Tests for RequirePermission and RequireLevel middleware.
// ABOUTME: Uses package api to access unexported context keys and Server fields.
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JKKN-Institutions/yi-connect-sub010/internal/auth"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/authz"
	"github.com/JKKN-Institutions/yi-connect-sub010/internal/config"
)

const testSecret = "rbactestsecret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}
	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

// issueToken issues a session token for an actor holding the given roles.
func issueToken(t *testing.T, roles []string) string {
	t.Helper()
	token, err := auth.IssueSessionToken([]byte(testSecret), auth.SessionClaims{
		UserID:    uuid.New(),
		Roles:     roles,
		ChapterID: uuid.New(),
	}, 15*time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// buildPermServer wraps RequireAuthenticated + RequirePermission around a
// handler that records the level injected into the request context.
func buildPermServer(t *testing.T, srv *Server, p authz.Permission) (*httptest.Server, *authz.Level) {
	t.Helper()
	var gotLevel authz.Level
	r := chi.NewRouter()
	r.With(
		srv.RequireAuthenticated(),
		srv.RequirePermission(p),
	).Get("/resource", func(w http.ResponseWriter, r *http.Request) {
		gotLevel, _ = r.Context().Value(ctxLevel).(authz.Level)
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(r), &gotLevel
}

func get(t *testing.T, ts *httptest.Server, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() }) //nolint:errcheck
	return resp
}

func TestRequirePermission_Allowed_200(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ts, gotLevel := buildPermServer(t, srv, authz.PermApproveBookings)
	t.Cleanup(ts.Close)

	token := issueToken(t, []string{"trainer", "co_chair"})
	resp := get(t, ts, "/resource", token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("co_chair requesting approve_bookings: got %d, want 200", resp.StatusCode)
	}
	if *gotLevel != authz.LevelCoChair {
		t.Errorf("ctxLevel = %v, want CoChair", *gotLevel)
	}
}

func TestRequirePermission_Denied_403(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ts, _ := buildPermServer(t, srv, authz.PermManageFinance)
	t.Cleanup(ts.Close)

	token := issueToken(t, []string{"member"})
	resp := get(t, ts, "/resource", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("member requesting manage_finance: got %d, want 403", resp.StatusCode)
	}
}

func TestRequirePermission_NoToken_401(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ts, _ := buildPermServer(t, srv, authz.PermViewEvents)
	t.Cleanup(ts.Close)

	resp := get(t, ts, "/resource", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", resp.StatusCode)
	}
}

func TestRequirePermission_UnknownRoleInSession_403(t *testing.T) {
	t.Parallel()
	// A session carrying a role outside the registry must never pass: a
	// failed lookup is a deny, not a fall-through.
	srv := newTestServer(t)
	ts, _ := buildPermServer(t, srv, authz.PermViewEvents)
	t.Cleanup(ts.Close)

	token := issueToken(t, []string{"member", "galactic_overlord"})
	resp := get(t, ts, "/resource", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("unknown role in session: got %d, want 403", resp.StatusCode)
	}
}

func TestRequirePermission_UnknownPermission_403(t *testing.T) {
	t.Parallel()
	// A route gated on a token outside the catalog (a typo or a stale
	// reference) must deny everyone — even a national admin. The failed
	// lookup is never an implicit grant.
	srv := newTestServer(t)
	ts, _ := buildPermServer(t, srv, authz.Permission("stale_token"))
	t.Cleanup(ts.Close)

	token := issueToken(t, []string{"national_admin"})
	resp := get(t, ts, "/resource", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("national_admin at stale-token-gated route: got %d, want 403", resp.StatusCode)
	}
}

func TestRequirePermission_BearerHeader(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	ts, _ := buildPermServer(t, srv, authz.PermViewEvents)
	t.Cleanup(ts.Close)

	token := issueToken(t, []string{"member"})
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, ts.URL+"/resource", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		t.Errorf("bearer auth: got %d, want 200", resp.StatusCode)
	}
}

func TestRequireLevel(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	r := chi.NewRouter()
	r.With(
		srv.RequireAuthenticated(),
		srv.RequireLevel(authz.LevelChair),
	).Get("/admin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	resp := get(t, ts, "/admin", issueToken(t, []string{"chair"}))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("chair at chair-gated route: got %d, want 200", resp.StatusCode)
	}

	resp = get(t, ts, "/admin", issueToken(t, []string{"co_chair"}))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("co_chair at chair-gated route: got %d, want 403", resp.StatusCode)
	}
}

func TestRequireAuthenticated_InjectsInstitution(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	instID := uuid.New()

	var gotInst uuid.UUID
	var gotOK bool
	r := chi.NewRouter()
	r.With(srv.RequireAuthenticated()).Get("/scoped", func(w http.ResponseWriter, r *http.Request) {
		gotInst, gotOK = r.Context().Value(ctxInstitutionID).(uuid.UUID)
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	token, err := auth.IssueSessionToken([]byte(testSecret), auth.SessionClaims{
		UserID:        uuid.New(),
		Roles:         []string{"school_coordinator"},
		ChapterID:     uuid.New(),
		InstitutionID: &instID,
	}, 15*time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	resp := get(t, ts, "/scoped", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	if !gotOK || gotInst != instID {
		t.Errorf("ctxInstitutionID = (%v, %v), want %v", gotInst, gotOK, instID)
	}
}
