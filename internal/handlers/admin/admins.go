package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/utils"
)

var allowedRoles = map[string]bool{
	"customer":   true,
	"pharmacist": true,
	"admin":      true,
}

// GetAllUsers liste les comptes pour le back-office
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, email, name, role FROM users`).Iter()
	defer iter.Close()

	users := []models.User{}
	var u models.User
	for iter.Scan(&u.ID, &u.Email, &u.Name, &u.Role) {
		users = append(users, u)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération utilisateurs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": len(users),
	})
}

// UpdateUserRole change le rôle d'un compte (customer, pharmacist, admin)
func UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if !allowedRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu (customer, pharmacist, admin)"})
		return
	}

	// On ne retire pas ses propres droits admin
	if userID == c.GetString("user_id") && req.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de retirer son propre rôle admin"})
		return
	}

	var email, password, name, oldRole string
	if err := database.GetPreparedGetUserByID().Bind(userID).Scan(&email, &password, &name, &oldRole); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if oldRole == req.Role {
		c.JSON(http.StatusOK, gin.H{"message": "Rôle inchangé"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE users SET role = ? WHERE user_id = ?`, req.Role, userID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour rôle pour %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du rôle"})
		return
	}

	// Log d'audit
	utils.LogAction(c, models.ActionAdminRoleChange, models.ResourceUser, userID,
		gin.H{"role": oldRole}, gin.H{"role": req.Role})

	log.Printf("✅ Rôle de %s: %s → %s", email, oldRole, req.Role)
	c.JSON(http.StatusOK, gin.H{
		"message": "Rôle mis à jour",
		"role":    req.Role,
	})
}
