package model

import "time"

// Audit actions recorded against entities
const (
	AuditActionCreate       = "create"
	AuditActionUpdate       = "update"
	AuditActionDelete       = "delete"
	AuditActionRestore      = "restore"
	AuditActionStatusChange = "status_change"
)

// AuditLog is an append-only record of who changed what entity and when,
// with before/after snapshots. Rows are never updated or deleted.
type AuditLog struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	Actor      string `json:"actor" gorm:"type:varchar(255);index;not null"`
	Action     string `json:"action" gorm:"type:varchar(30);index;not null"`
	EntityType string `json:"entity_type" gorm:"type:varchar(50);index;not null"`
	EntityID   uint   `json:"entity_id" gorm:"index"`

	OldValue string `json:"old_value,omitempty" gorm:"type:text"`
	NewValue string `json:"new_value,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
