package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// GetAllConsultations liste les demandes de consultation, filtrables par statut
func GetAllConsultations(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	statusFilter := c.Query("status")

	iter := session.Query(`SELECT consultation_id, user_id, email, subject, message, preferred_slot, status, created_at, updated_at
		FROM consultations`).Iter()
	defer iter.Close()

	consultations := []models.Consultation{}
	var cons models.Consultation
	for iter.Scan(&cons.ID, &cons.UserID, &cons.Email, &cons.Subject, &cons.Message,
		&cons.PreferredSlot, &cons.Status, &cons.CreatedAt, &cons.UpdatedAt) {
		if statusFilter != "" && cons.Status != statusFilter {
			continue
		}
		consultations = append(consultations, cons)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération consultations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consultations": consultations,
		"total":         len(consultations),
	})
}

// UpdateConsultationStatus fait avancer une demande : requested → scheduled → closed
func UpdateConsultationStatus(c *gin.Context) {
	consultationID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID consultation invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if req.Status != models.ConsultationScheduled && req.Status != models.ConsultationClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide (scheduled ou closed)"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID string
	err = session.Query(`SELECT user_id FROM consultations WHERE consultation_id = ?`, consultationID).Scan(&userID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Consultation introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture consultation"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE consultations SET status = ?, updated_at = ? WHERE consultation_id = ?`,
		req.Status, now, consultationID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour consultation %s: %v", consultationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour de la consultation"})
		return
	}

	if userID != "" {
		if err := session.Query(`UPDATE consultations_by_user SET status = ?, updated_at = ? WHERE user_id = ? AND consultation_id = ?`,
			req.Status, now, userID, consultationID).Exec(); err != nil {
			log.Printf("⚠️ Erreur mise à jour consultations_by_user pour %s: %v", consultationID, err)
		}
	}

	log.Printf("✅ Consultation %s → %s", consultationID, req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Consultation mise à jour", "status": req.Status})
}
