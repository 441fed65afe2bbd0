package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adsc/report-system/internal/api/middleware"
	"github.com/adsc/report-system/internal/core/domain"
	"github.com/adsc/report-system/internal/core/ports"
)

// newTestContext builds a request context with the validator installed and,
// when identity is non-nil, the caller already resolved.
func newTestContext(method, target, body string, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		middleware.WithIdentity(c, identity)
	}
	return c, rec
}

func systemIdentity(id, role string) *domain.Identity {
	tier, perms, _ := domain.SystemRole(role)
	return &domain.Identity{ID: id, Username: id, Role: domain.ResolvedRole{Name: role, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms}}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error)
	logoutFn func(ctx context.Context, identity *domain.Identity, meta ports.RequestMeta)
	changeFn func(ctx context.Context, identity *domain.Identity, current, next string, meta ports.RequestMeta) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password, meta)
}

func (s *stubAuthService) Logout(ctx context.Context, identity *domain.Identity, meta ports.RequestMeta) {
	if s.logoutFn != nil {
		s.logoutFn(ctx, identity, meta)
	}
}

func (s *stubAuthService) ChangePassword(ctx context.Context, identity *domain.Identity, current, next string, meta ports.RequestMeta) error {
	return s.changeFn(ctx, identity, current, next, meta)
}

func (s *stubAuthService) EnsureAdmin(context.Context, ports.AdminSeed) (*domain.User, bool, error) {
	return nil, false, nil
}

// systemResolver resolves system names and maps everything else to the employee bag.
type systemResolver struct{}

func (systemResolver) Resolve(_ context.Context, name string) domain.ResolvedRole {
	if tier, perms, ok := domain.SystemRole(name); ok {
		return domain.ResolvedRole{Name: name, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms}
	}
	return domain.ResolvedRole{Name: name, Kind: domain.RoleKindCustom, Permissions: domain.EmployeePermissions}
}

func (r systemResolver) HasCapability(ctx context.Context, name string, c domain.Capability) bool {
	return r.Resolve(ctx, name).Can(c)
}

func (r systemResolver) HasRole(ctx context.Context, userRole, requiredRole string) bool {
	have, need := r.Resolve(ctx, userRole).Tier, r.Resolve(ctx, requiredRole).Tier
	return have > 0 && have >= need
}

func (systemResolver) Invalidate(context.Context, string) {}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string, meta ports.RequestMeta) (string, *domain.User, error) {
			if username != "alice" || password != "Str0ng!Pass" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed.jwt", &domain.User{ID: "u1", Username: "alice", Role: domain.RoleManager, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub, systemResolver{})

	c, rec := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"Str0ng!Pass"}`, nil)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["token"] != "signed.jwt" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "manager" || user["isManager"] != true || user["isAdmin"] != false {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	perms, _ := user["permissions"].(map[string]any)
	if perms["canViewAllReports"] != true || perms["canManageUsers"] != false {
		t.Fatalf("unexpected permissions: %+v", perms)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string, ports.RequestMeta) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, systemResolver{})

	c, _ := newTestContext(http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`, nil)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthHandler_Login_BadPayload(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, systemResolver{})

	c, _ := newTestContext(http.MethodPost, "/api/login", `{"username":`, nil)
	err := handler.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	c, _ = newTestContext(http.MethodPost, "/api/login", `{"username":"alice"}`, nil)
	err = handler.Login(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0] != "password is required" {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, systemResolver{})

	c, rec := newTestContext(http.MethodGet, "/api/user", "", systemIdentity("a1", domain.RoleAdmin))
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if resp["id"] != "a1" || resp["isAdmin"] != true || resp["isManager"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_RequiresIdentity(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, systemResolver{})

	c, _ := newTestContext(http.MethodGet, "/api/user", "", nil)
	var he *echo.HTTPError
	if err := handler.Me(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_LogoutAndChangePassword(t *testing.T) {
	var loggedOut, changed bool
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, identity *domain.Identity, meta ports.RequestMeta) {
			loggedOut = identity.ID == "e1" && meta.IPAddress != ""
		},
		changeFn: func(_ context.Context, _ *domain.Identity, current, next string, _ ports.RequestMeta) error {
			changed = current == "Old!Pass1" && next == "New!Pass1"
			return nil
		},
	}
	handler := NewAuthHandler(stub, systemResolver{})
	employee := systemIdentity("e1", domain.RoleEmployee)

	c, rec := newTestContext(http.MethodPost, "/api/logout", "", employee)
	if err := handler.Logout(c); err != nil || rec.Code != http.StatusOK || !loggedOut {
		t.Fatalf("logout failed: err=%v code=%d", err, rec.Code)
	}

	c, rec = newTestContext(http.MethodPost, "/api/change-password", `{"currentPassword":"Old!Pass1","newPassword":"New!Pass1"}`, employee)
	if err := handler.ChangePassword(c); err != nil || rec.Code != http.StatusOK || !changed {
		t.Fatalf("change password failed: err=%v code=%d", err, rec.Code)
	}
}
