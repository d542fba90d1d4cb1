package entities

import "time"

type AuditEventType string

const (
	AuditEventDelete AuditEventType = "delete"
	AuditEventAuth   AuditEventType = "auth"
)

// AuditEvent records a sensitive action (data deletion, auth changes) for
// accountability. Events are pruned past their retention window by a
// background task.
type AuditEvent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	EventType  AuditEventType `gorm:"index;size:20" json:"event_type"`
	Action     string         `gorm:"size:100" json:"action"`     // e.g., "data_delete_all", "login_lockout"
	EntityType string         `gorm:"size:50" json:"entity_type"` // "bookmarks", "notes", ...
	Count      int64          `json:"count"`
	IPAddress  string         `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
