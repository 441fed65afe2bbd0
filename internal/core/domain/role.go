package domain

import (
	"regexp"
	"strings"
	"time"
)

// Capability names a single boolean permission.
type Capability string

const (
	CanViewReports      Capability = "canViewReports"
	CanCreateReports    Capability = "canCreateReports"
	CanEditReports      Capability = "canEditReports"
	CanDeleteReports    Capability = "canDeleteReports"
	CanViewAllReports   Capability = "canViewAllReports"
	CanAccessAdmin      Capability = "canAccessAdmin"
	CanManageUsers      Capability = "canManageUsers"
	CanViewActivityLogs Capability = "canViewActivityLogs"
	CanExportData       Capability = "canExportData"
	CanBackupRestore    Capability = "canBackupRestore"
)

// AllCapabilities lists every capability in declaration order.
var AllCapabilities = []Capability{
	CanViewReports, CanCreateReports, CanEditReports, CanDeleteReports, CanViewAllReports,
	CanAccessAdmin, CanManageUsers, CanViewActivityLogs, CanExportData, CanBackupRestore,
}

// Permissions is the complete capability bag of a role. Every field is always
// defined, so a bag can never be partial.
type Permissions struct {
	CanViewReports      bool `json:"canViewReports" bson:"can_view_reports"`
	CanCreateReports    bool `json:"canCreateReports" bson:"can_create_reports"`
	CanEditReports      bool `json:"canEditReports" bson:"can_edit_reports"`
	CanDeleteReports    bool `json:"canDeleteReports" bson:"can_delete_reports"`
	CanViewAllReports   bool `json:"canViewAllReports" bson:"can_view_all_reports"`
	CanAccessAdmin      bool `json:"canAccessAdmin" bson:"can_access_admin"`
	CanManageUsers      bool `json:"canManageUsers" bson:"can_manage_users"`
	CanViewActivityLogs bool `json:"canViewActivityLogs" bson:"can_view_activity_logs"`
	CanExportData       bool `json:"canExportData" bson:"can_export_data"`
	CanBackupRestore    bool `json:"canBackupRestore" bson:"can_backup_restore"`
}

// Has reports whether the bag grants c. Unknown capabilities are never granted.
func (p Permissions) Has(c Capability) bool {
	if f := p.field(c); f != nil {
		return *f
	}
	return false
}

// With returns a copy of the bag with c set to v. Unknown capabilities are ignored.
func (p Permissions) With(c Capability, v bool) Permissions {
	if f := p.field(c); f != nil {
		*f = v
	}
	return p
}

func (p *Permissions) field(c Capability) *bool {
	switch c {
	case CanViewReports:
		return &p.CanViewReports
	case CanCreateReports:
		return &p.CanCreateReports
	case CanEditReports:
		return &p.CanEditReports
	case CanDeleteReports:
		return &p.CanDeleteReports
	case CanViewAllReports:
		return &p.CanViewAllReports
	case CanAccessAdmin:
		return &p.CanAccessAdmin
	case CanManageUsers:
		return &p.CanManageUsers
	case CanViewActivityLogs:
		return &p.CanViewActivityLogs
	case CanExportData:
		return &p.CanExportData
	case CanBackupRestore:
		return &p.CanBackupRestore
	}
	return nil
}

// System role names. They are constants and never stored.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

var (
	AdminPermissions = Permissions{
		CanViewReports: true, CanCreateReports: true, CanEditReports: true, CanDeleteReports: true,
		CanViewAllReports: true, CanAccessAdmin: true, CanManageUsers: true, CanViewActivityLogs: true,
		CanExportData: true, CanBackupRestore: true,
	}
	ManagerPermissions = Permissions{
		CanViewReports: true, CanCreateReports: true, CanEditReports: true,
		CanViewAllReports: true, CanAccessAdmin: true, CanViewActivityLogs: true, CanExportData: true,
	}
	EmployeePermissions = Permissions{CanViewReports: true, CanCreateReports: true, CanExportData: true}
)

var systemRoles = map[string]struct {
	tier  int
	perms Permissions
}{
	RoleAdmin:    {tier: 3, perms: AdminPermissions},
	RoleManager:  {tier: 2, perms: ManagerPermissions},
	RoleEmployee: {tier: 1, perms: EmployeePermissions},
}

// SystemRoleNames in descending tier order.
var SystemRoleNames = []string{RoleAdmin, RoleManager, RoleEmployee}

// SystemRole returns the tier and bag of a reserved role name.
func SystemRole(name string) (tier int, perms Permissions, ok bool) {
	r, ok := systemRoles[name]
	return r.tier, r.perms, ok
}

// IsReservedRoleName matches system names case-insensitively.
func IsReservedRoleName(name string) bool {
	_, ok := systemRoles[RoleKey(name)]
	return ok
}

// RoleKey is the case-insensitive lookup key of a role name.
func RoleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RoleKind tags a resolved role.
type RoleKind string

const (
	RoleKindSystem RoleKind = "system"
	RoleKindCustom RoleKind = "custom"
)

// ResolvedRole is a role name bound to its permission bag. Tier is zero for
// custom roles.
type ResolvedRole struct {
	Name        string      `json:"name"`
	Kind        RoleKind    `json:"kind"`
	Tier        int         `json:"tier,omitempty"`
	Permissions Permissions `json:"permissions"`
}

func (r ResolvedRole) Can(c Capability) bool { return r.Permissions.Has(c) }

// CustomRole is an admin-defined role stored in the roles collection.
type CustomRole struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Permissions Permissions `json:"permissions"`
	CreatedBy   string      `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

var roleNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\s]+$`)

const (
	roleNameMin        = 2
	roleNameMax        = 30
	roleDescriptionMax = 200
)

// ValidateRoleDefinition checks the shape of a custom role name and description.
func ValidateRoleDefinition(name, description string) error {
	verr := NewValidationError()
	name = strings.TrimSpace(name)
	switch {
	case len(name) < roleNameMin:
		verr.Add("name must be at least 2 characters")
	case len(name) > roleNameMax:
		verr.Add("name must be at most 30 characters")
	case !roleNamePattern.MatchString(name):
		verr.Add("name can only contain letters, numbers, spaces, and underscores")
	}
	if len(description) > roleDescriptionMax {
		verr.Add("description must be at most 200 characters")
	}
	return verr.OrNil()
}
