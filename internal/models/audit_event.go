package models

import "time"

// Audit event types.
const (
	EventLoginSucceeded  = "LOGIN_SUCCEEDED"
	EventLoginFailed     = "LOGIN_FAILED"
	EventAdminRegistered = "ADMIN_REGISTERED"
	EventResetRequested  = "RESET_REQUESTED"
	EventResetCompleted  = "RESET_COMPLETED"
	EventResetFailed     = "RESET_FAILED"
	EventUserAdded       = "USER_ADDED"
	EventUserUpdated     = "USER_UPDATED"
	EventUserRemoved     = "USER_REMOVED"
	EventFileUploaded    = "FILE_UPLOADED"
	EventFileRemoved     = "FILE_REMOVED"
)

// AuditEvent is a single security log entry.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // one of the Event* constants
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
