package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/adsc/report-system/internal/core/domain"
)

func systemIdentity(id, role string) *domain.Identity {
	tier, perms, _ := domain.SystemRole(role)
	return &domain.Identity{ID: id, Username: id, Role: domain.ResolvedRole{Name: role, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms}}
}

func runCapability(t *testing.T, identity *domain.Identity, c domain.Capability) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if identity != nil {
		WithIdentity(ctx, identity)
	}

	called := false
	handler := RequireCapability(c)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRequireCapability_Allows(t *testing.T) {
	rec, called := runCapability(t, systemIdentity("a1", domain.RoleAdmin), domain.CanDeleteReports)
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireCapability_Forbids(t *testing.T) {
	rec, called := runCapability(t, systemIdentity("m1", domain.RoleManager), domain.CanManageUsers)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireCapability_Unauthenticated(t *testing.T) {
	rec, called := runCapability(t, nil, domain.CanViewReports)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireIdentity(t *testing.T) {
	custom := &domain.Identity{ID: "c1", Role: domain.ResolvedRole{Name: "Viewer", Kind: domain.RoleKindCustom}}
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	WithIdentity(ctx, custom)

	called := false
	_ = RequireIdentity()(func(c echo.Context) error { called = true; return nil })(ctx)
	if !called {
		t.Fatalf("any identity passes RequireIdentity")
	}
}

// ── Identity ──────────────────────────────────────────────────────────────────

type stubUsers map[string]*domain.User

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, name string) domain.ResolvedRole {
	if tier, perms, ok := domain.SystemRole(name); ok {
		return domain.ResolvedRole{Name: name, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms}
	}
	return domain.ResolvedRole{Name: name, Kind: domain.RoleKindCustom, Permissions: domain.EmployeePermissions}
}

func runIdentity(t *testing.T, users stubUsers, userID string) (*httptest.ResponseRecorder, *domain.Identity) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if userID != "" {
		ctx.Set(CtxUserID, userID)
	}

	var got *domain.Identity
	handler := Identity(users, stubResolver{})(func(c echo.Context) error {
		got = CurrentIdentity(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(ctx); err != nil {
		e.HTTPErrorHandler(err, ctx)
	}
	return rec, got
}

func TestIdentity_UsesStoredRole(t *testing.T) {
	users := stubUsers{"u1": {ID: "u1", Username: "alice", Role: domain.RoleManager, IsActive: true}}
	rec, got := runIdentity(t, users, "u1")
	if rec.Code != http.StatusOK || got == nil {
		t.Fatalf("expected identity, got %d", rec.Code)
	}
	if got.Role.Name != domain.RoleManager || !got.Can(domain.CanViewAllReports) {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestIdentity_RejectsMissingAndInactive(t *testing.T) {
	users := stubUsers{"u2": {ID: "u2", Username: "bob", Role: domain.RoleEmployee, IsActive: false}}

	for name, id := range map[string]string{"no claims": "", "deleted": "ghost", "inactive": "u2"} {
		rec, got := runIdentity(t, users, id)
		if got != nil {
			t.Fatalf("%s: should not reach next", name)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}

// ── RateLimit ─────────────────────────────────────────────────────────────────

type stubLimiter struct {
	hits map[string]int
	err  error
}

func (s *stubLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, time.Duration, error) {
	if s.err != nil {
		return false, 0, s.err
	}
	s.hits[key]++
	if s.hits[key] > limit {
		return false, 90 * time.Second, nil
	}
	return true, 0, nil
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	limiter := &stubLimiter{hits: map[string]int{}}
	mw := RateLimit(limiter, "login", 2, time.Minute, zerolog.Nop())
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		_ = handler(e.NewContext(req, rec))
		codes = append(codes, rec.Code)
		if i == 2 && rec.Header().Get("Retry-After") != "90" {
			t.Fatalf("expected Retry-After 90, got %q", rec.Header().Get("Retry-After"))
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
	if limiter.hits["login:10.0.0.1"] != 3 {
		t.Fatalf("expected hits keyed by limiter and ip, got %v", limiter.hits)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := echo.New()
	mw := RateLimit(&stubLimiter{err: errors.New("redis down")}, "login", 1, time.Minute, zerolog.Nop())
	rec := httptest.NewRecorder()
	_ = mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to pass when limiter fails, got %d", rec.Code)
	}
}
