package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Actions auditées du back-office
const (
	ActionOrderStatusChange   = "order_status_change"
	ActionProductCreate       = "product_create"
	ActionProductUpdate       = "product_update"
	ActionProductDelete       = "product_delete"
	ActionQuestionnaireReview = "questionnaire_review"
	ActionAdminRoleChange     = "admin_role_change"

	ResourceOrder         = "order"
	ResourceProduct       = "product"
	ResourceQuestionnaire = "questionnaire"
	ResourceUser          = "user"
)

type AuditLog struct {
	ID         gocql.UUID `json:"id" db:"audit_id"`
	UserID     string     `json:"user_id" db:"user_id"`
	UserEmail  string     `json:"user_email" db:"user_email"`
	Action     string     `json:"action" db:"action"`
	Resource   string     `json:"resource" db:"resource"`
	ResourceID string     `json:"resource_id" db:"resource_id"`
	OldValue   string     `json:"old_value,omitempty" db:"old_value"`
	NewValue   string     `json:"new_value,omitempty" db:"new_value"`
	Success    bool       `json:"success" db:"success"`
	ErrorMsg   string     `json:"error_msg,omitempty" db:"error_msg"`
	IP         string     `json:"ip" db:"ip"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
