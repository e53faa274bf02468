package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/utils"
)

// GetPendingQuestionnaires liste les questionnaires en attente de validation
// pharmacien
func GetPendingQuestionnaires(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT approval_id, user_id, product_id, conditions, current_medications,
		is_pregnant, has_allergies, allergy_details, status, reviewer_note, created_at
		FROM questionnaire_approvals`).Iter()
	defer iter.Close()

	pending := []models.QuestionnaireApproval{}
	var a models.QuestionnaireApproval
	for iter.Scan(&a.ID, &a.UserID, &a.ProductID, &a.Conditions, &a.CurrentMedications,
		&a.IsPregnant, &a.HasAllergies, &a.AllergyDetails, &a.Status, &a.ReviewerNote, &a.CreatedAt) {
		if a.Status == models.ApprovalPending {
			pending = append(pending, a)
		}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération questionnaires: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questionnaires": pending,
		"total":          len(pending),
	})
}

// ReviewQuestionnaire approuve ou refuse un questionnaire. Seuls les
// questionnaires "pending" sont modifiables : une décision prise est définitive.
func ReviewQuestionnaire(c *gin.Context) {
	approvalID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID questionnaire invalide"})
		return
	}

	var req struct {
		Decision     string `json:"decision" binding:"required"` // approved | rejected
		ReviewerNote string `json:"reviewerNote"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if req.Decision != models.ApprovalApproved && req.Decision != models.ApprovalRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Décision invalide (approved ou rejected)"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var a models.QuestionnaireApproval
	err = session.Query(`SELECT approval_id, user_id, product_id, status, created_at
		FROM questionnaire_approvals WHERE approval_id = ?`, approvalID).Scan(
		&a.ID, &a.UserID, &a.ProductID, &a.Status, &a.CreatedAt)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Questionnaire introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture questionnaire"})
		return
	}

	if a.Status != models.ApprovalPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Questionnaire déjà traité (" + a.Status + ")"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE questionnaire_approvals SET status = ?, reviewer_note = ?, reviewed_at = ?
		WHERE approval_id = ?`,
		req.Decision, req.ReviewerNote, now, approvalID).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour questionnaire %s: %v", approvalID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du questionnaire"})
		return
	}

	if err := session.Query(`UPDATE approvals_by_user SET status = ? WHERE user_id = ? AND approval_id = ?`,
		req.Decision, a.UserID, approvalID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour approvals_by_user pour %s: %v", approvalID, err)
	}

	// Log d'audit
	utils.LogAction(c, models.ActionQuestionnaireReview, models.ResourceQuestionnaire, approvalID.String(),
		gin.H{"status": models.ApprovalPending}, gin.H{"status": req.Decision, "note": req.ReviewerNote})

	// 📧 Notification patient, sans bloquer la réponse
	var patientEmail, password, name, role string
	if dbErr := database.GetPreparedGetUserByID().Bind(a.UserID).Scan(&patientEmail, &password, &name, &role); dbErr == nil {
		productName := productNameFor(a.ProductID)
		decision := req.Decision
		note := req.ReviewerNote
		utils.RunBestEffort("email questionnaire", func() error {
			return utils.SendQuestionnaireDecisionEmail(patientEmail, productName, decision, note)
		})
	}

	log.Printf("✅ Questionnaire %s: %s (par %s)", approvalID, req.Decision, c.GetString("email"))
	c.JSON(http.StatusOK, gin.H{
		"message":  "Questionnaire " + req.Decision,
		"decision": req.Decision,
	})
}

func productNameFor(productID gocql.UUID) string {
	var p models.Product
	err := database.GetPreparedGetProductByID().Bind(productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.ActiveSubstance, &p.Price, &p.CategoryID,
		&p.ImageURLs, &p.Tags, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return "votre produit"
	}
	return p.Name
}
