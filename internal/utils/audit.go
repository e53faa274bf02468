package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// LogAction enregistre une action admin réussie dans la piste d'audit
func LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}) {
	entry := buildEntry(c, action, resource, resourceID, oldValue, newValue, true, "")
	RunBestEffort("audit "+action, func() error {
		return insertAuditLog(entry)
	})
}

// LogFailedAction enregistre une action admin échouée
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	entry := buildEntry(c, action, resource, resourceID, nil, nil, false, errorMsg)
	RunBestEffort("audit "+action, func() error {
		return insertAuditLog(entry)
	})
}

// buildEntry capture le contexte gin AVANT la goroutine (le contexte est
// recyclé après la réponse)
func buildEntry(c *gin.Context, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) models.AuditLog {
	marshal := func(v interface{}) string {
		if v == nil {
			return ""
		}
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}

	return models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     c.GetString("user_id"),
		UserEmail:  c.GetString("email"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   marshal(oldValue),
		NewValue:   marshal(newValue),
		Success:    success,
		ErrorMsg:   errorMsg,
		IP:         c.ClientIP(),
		CreatedAt:  time.Now(),
	}
}

func insertAuditLog(entry models.AuditLog) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	err = session.Query(`INSERT INTO admin_audit (audit_id, user_id, user_email, action, resource, resource_id,
		old_value, new_value, success, error_msg, ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Resource, entry.ResourceID,
		entry.OldValue, entry.NewValue, entry.Success, entry.ErrorMsg, entry.IP, entry.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur enregistrement log audit: %v", err)
	}
	return err
}
