package admin

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// GetAuditLogs récupère la piste d'audit du back-office avec filtres
func GetAuditLogs(c *gin.Context) {
	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Paramètres de filtrage
	userID := c.Query("user_id")
	action := c.Query("action")
	resource := c.Query("resource")
	limitStr := c.DefaultQuery("limit", "100")

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	iter := usersSession.Query(`SELECT audit_id, user_id, user_email, action, resource, resource_id,
		old_value, new_value, success, error_msg, ip, created_at
		FROM admin_audit LIMIT ?`, limit).Iter()
	defer iter.Close()

	logs := []models.AuditLog{}
	var entry models.AuditLog
	for iter.Scan(&entry.ID, &entry.UserID, &entry.UserEmail,
		&entry.Action, &entry.Resource, &entry.ResourceID,
		&entry.OldValue, &entry.NewValue, &entry.Success,
		&entry.ErrorMsg, &entry.IP, &entry.CreatedAt) {
		if userID != "" && entry.UserID != userID {
			continue
		}
		if action != "" && entry.Action != action {
			continue
		}
		if resource != "" && entry.Resource != resource {
			continue
		}
		logs = append(logs, entry)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération logs audit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": len(logs),
		"filters": gin.H{
			"user_id":  userID,
			"action":   action,
			"resource": resource,
			"limit":    limit,
		},
	})
}
