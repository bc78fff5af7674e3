package models

import "time"

const (
	AuditRoleChange       = "role_change"
	AuditPasswordReset    = "password_reset"
	AuditActivationToggle = "activation_toggle"
)

type AuditRecord struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	TargetID  *int64    `json:"target_id,omitempty"`
	Detail    *string   `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
