package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adsc/report-system/internal/core/domain"
)

// ── users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, name string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == name {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

// ── roles ─────────────────────────────────────────────────────────────────────

type stubRoleRepo struct {
	roles   map[string]*domain.CustomRole
	nextID  int
	lookups int
	failErr error
}

func newStubRoleRepo(roles ...domain.CustomRole) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.CustomRole)}
	for i := range roles {
		_, _ = r.Create(context.Background(), &roles[i])
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.CustomRole) (*domain.CustomRole, error) {
	for _, existing := range r.roles {
		if strings.EqualFold(existing.Name, role.Name) {
			return nil, domain.ErrRoleExists
		}
	}
	copy := *role
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("r%d", r.nextID)
	}
	r.roles[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.CustomRole, error) {
	if role, ok := r.roles[id]; ok {
		out := *role
		return &out, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.CustomRole, error) {
	r.lookups++
	if r.failErr != nil {
		return nil, r.failErr
	}
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, strings.TrimSpace(name)) {
			out := *role
			return &out, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.CustomRole, error) {
	out := make([]domain.CustomRole, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRoleRepo) Update(_ context.Context, role *domain.CustomRole) (*domain.CustomRole, error) {
	if _, ok := r.roles[role.ID]; !ok {
		return nil, domain.ErrRoleNotFound
	}
	copy := *role
	r.roles[role.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

// ── reports ───────────────────────────────────────────────────────────────────

type stubReportRepo struct {
	reports map[string]*domain.Report
	nextID  int
	filters []domain.ReportFilter
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func (r *stubReportRepo) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	copy := *report
	r.nextID++
	copy.ID = fmt.Sprintf("rep%d", r.nextID)
	r.reports[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.Report, error) {
	if rep, ok := r.reports[id]; ok {
		out := *rep
		return &out, nil
	}
	return nil, domain.ErrReportNotFound
}

func (r *stubReportRepo) List(_ context.Context, f domain.ReportFilter) ([]domain.Report, error) {
	r.filters = append(r.filters, f)
	out := []domain.Report{}
	for _, rep := range r.reports {
		if f.Date != "" && rep.Date != f.Date {
			continue
		}
		if f.CreatedBy != "" && rep.CreatedBy != f.CreatedBy {
			continue
		}
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubReportRepo) Update(_ context.Context, report *domain.Report) (*domain.Report, error) {
	if _, ok := r.reports[report.ID]; !ok {
		return nil, domain.ErrReportNotFound
	}
	copy := *report
	r.reports[report.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reports[id]; !ok {
		return domain.ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}

// ── side channels ─────────────────────────────────────────────────────────────

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.ActivityLog
}

func (r *stubRecorder) Record(entry domain.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *stubRecorder) actions() []domain.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ActivityAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubCache struct {
	bags        map[string]domain.Permissions
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{bags: make(map[string]domain.Permissions)}
}

func (c *stubCache) Get(_ context.Context, key string) (domain.Permissions, bool, error) {
	p, ok := c.bags[key]
	return p, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, perms domain.Permissions) error {
	c.bags[key] = perms
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, key string) error {
	delete(c.bags, key)
	c.invalidated = append(c.invalidated, key)
	return nil
}

type stubLockout struct {
	failures  map[string]int
	threshold int
	locked    map[string]bool
}

func newStubLockout(threshold int) *stubLockout {
	return &stubLockout{failures: map[string]int{}, locked: map[string]bool{}, threshold: threshold}
}

func (l *stubLockout) Remaining(_ context.Context, username string) (time.Duration, error) {
	if l.locked[username] {
		return 30 * time.Minute, nil
	}
	return 0, nil
}

func (l *stubLockout) RecordFailure(_ context.Context, username string) (bool, error) {
	l.failures[username]++
	if l.failures[username] >= l.threshold {
		l.locked[username] = true
		return true, nil
	}
	return false, nil
}

func (l *stubLockout) Reset(_ context.Context, username string) error {
	delete(l.failures, username)
	delete(l.locked, username)
	return nil
}

// ── identities ────────────────────────────────────────────────────────────────

func identityFor(id, role string) *domain.Identity {
	tier, perms, _ := domain.SystemRole(role)
	return &domain.Identity{
		ID:       id,
		Username: id,
		Role:     domain.ResolvedRole{Name: role, Kind: domain.RoleKindSystem, Tier: tier, Permissions: perms},
	}
}

func customIdentity(id, role string, perms domain.Permissions) *domain.Identity {
	return &domain.Identity{ID: id, Username: id, Role: domain.ResolvedRole{Name: role, Kind: domain.RoleKindCustom, Permissions: perms}}
}
