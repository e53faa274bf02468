package middleware

import (
	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/utils"
)

// AuditAdminAction trace les mutations du back-office (changement de statut,
// CRUD produit, revue questionnaire, gestion des rôles) dans admin_audit
func AuditAdminAction(action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("id")

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			utils.LogAction(c, action, resource, resourceID, nil, nil)
		} else {
			utils.LogFailedAction(c, action, resource, resourceID, "Action échouée")
		}
	}
}
