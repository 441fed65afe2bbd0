package domain

import "time"

// ActivityAction enumerates the kinds of audited operations.
type ActivityAction string

const (
	ActionLogin           ActivityAction = "login"
	ActionLogout          ActivityAction = "logout"
	ActionReportCreated   ActivityAction = "report_created"
	ActionReportUpdated   ActivityAction = "report_updated"
	ActionReportDeleted   ActivityAction = "report_deleted"
	ActionReportViewed    ActivityAction = "report_viewed"
	ActionReportExported  ActivityAction = "report_exported"
	ActionReportShared    ActivityAction = "report_shared"
	ActionReportsRestored ActivityAction = "reports_restored"
	ActionUserCreated     ActivityAction = "user_created"
	ActionUserUpdated     ActivityAction = "user_updated"
	ActionUserDeleted     ActivityAction = "user_deleted"
	ActionPasswordChanged ActivityAction = "password_changed"
	ActionRoleCreated     ActivityAction = "role_created"
	ActionRoleUpdated     ActivityAction = "role_updated"
	ActionRoleDeleted     ActivityAction = "role_deleted"
)

var knownActions = map[ActivityAction]struct{}{
	ActionLogin: {}, ActionLogout: {},
	ActionReportCreated: {}, ActionReportUpdated: {}, ActionReportDeleted: {},
	ActionReportViewed: {}, ActionReportExported: {}, ActionReportShared: {}, ActionReportsRestored: {},
	ActionUserCreated: {}, ActionUserUpdated: {}, ActionUserDeleted: {}, ActionPasswordChanged: {},
	ActionRoleCreated: {}, ActionRoleUpdated: {}, ActionRoleDeleted: {},
}

// Valid reports whether a is a known action kind.
func (a ActivityAction) Valid() bool {
	_, ok := knownActions[a]
	return ok
}

// ActivityLog is an append-only audit record.
type ActivityLog struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	Username     string            `json:"username"`
	Action       ActivityAction    `json:"action"`
	ResourceType string            `json:"resourceType,omitempty"`
	ResourceID   string            `json:"resourceId,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	IPAddress    string            `json:"ipAddress,omitempty"`
	UserAgent    string            `json:"userAgent,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Resource types attached to activity entries.
const (
	ResourceReport = "report"
	ResourceUser   = "user"
	ResourceRole   = "role"
)

const (
	DefaultActivityLimit = 100
	MaxActivityLimit     = 1000
)

// ActivityFilter narrows activity queries; results are always newest first.
type ActivityFilter struct {
	UserID string
	Limit  int
}
