package user

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/utils"
)

//
// 💬 POST /api/consultations — demande de rendez-vous avec un pharmacien
//
func RequestConsultation(c *gin.Context) {
	var input struct {
		Email         string `json:"email"`
		Subject       string `json:"subject"`
		Message       string `json:"message"`
		PreferredSlot string `json:"preferredSlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	userID := c.GetString("user_id")
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = c.GetString("email")
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email de contact requis"})
		return
	}
	if strings.TrimSpace(input.Subject) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sujet requis"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	consultation := models.Consultation{
		ID:            gocql.TimeUUID(),
		UserID:        userID,
		Email:         email,
		Subject:       input.Subject,
		Message:       input.Message,
		PreferredSlot: input.PreferredSlot,
		Status:        models.ConsultationRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := session.Query(`INSERT INTO consultations (consultation_id, user_id, email, subject, message,
		preferred_slot, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		consultation.ID, consultation.UserID, consultation.Email, consultation.Subject,
		consultation.Message, consultation.PreferredSlot, consultation.Status,
		consultation.CreatedAt, consultation.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement demande"})
		return
	}

	if consultation.UserID != "" {
		if err := session.Query(`INSERT INTO consultations_by_user (user_id, consultation_id, email, subject, message,
			preferred_slot, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			consultation.UserID, consultation.ID, consultation.Email, consultation.Subject,
			consultation.Message, consultation.PreferredSlot, consultation.Status,
			consultation.CreatedAt, consultation.UpdatedAt).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement demande"})
			return
		}
	}

	// 📧 Accusé de réception + alerte équipe officine, sans bloquer la réponse
	utils.RunBestEffort("email consultation", func() error {
		if err := utils.SendConsultationRequestEmail(consultation); err != nil {
			return err
		}
		pharmacy := os.Getenv("PHARMACY_TEAM_EMAIL")
		if pharmacy == "" {
			return nil
		}
		return utils.SendConsultationAlertEmail(pharmacy, consultation)
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Demande de consultation enregistrée",
		"consultation": consultation,
	})
}

//
// 🟢 GET /api/consultations — mes demandes
//
func GetMyConsultations(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT consultation_id, user_id, email, subject, message, preferred_slot, status, created_at, updated_at
		FROM consultations_by_user WHERE user_id = ?`, userID).Iter()

	consultations := []models.Consultation{}
	var cons models.Consultation
	for iter.Scan(&cons.ID, &cons.UserID, &cons.Email, &cons.Subject, &cons.Message,
		&cons.PreferredSlot, &cons.Status, &cons.CreatedAt, &cons.UpdatedAt) {
		consultations = append(consultations, cons)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture consultations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}
