package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

//
// 📋 POST /api/questionnaires — soumission du questionnaire médical pour un
// produit sur ordonnance. Le statut démarre à "pending" jusqu'à validation par
// un pharmacien.
//
func SubmitQuestionnaire(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Connexion requise pour soumettre un questionnaire"})
		return
	}

	var input struct {
		ProductID          string   `json:"productId"`
		Conditions         []string `json:"conditions"`
		CurrentMedications []string `json:"currentMedications"`
		IsPregnant         bool     `json:"isPregnant"`
		HasAllergies       bool     `json:"hasAllergies"`
		AllergyDetails     string   `json:"allergyDetails"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Le produit doit exister et exiger une ordonnance
	var p models.Product
	if err := database.GetPreparedGetProductByID().Bind(gocql.UUID(productID)).Scan(
		&p.ID, &p.Name, &p.Description, &p.ActiveSubstance, &p.Price, &p.CategoryID,
		&p.ImageURLs, &p.Tags, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if !p.RequiresPrescription {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ce produit ne nécessite pas de questionnaire"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	approval := models.QuestionnaireApproval{
		ID:                 gocql.TimeUUID(),
		UserID:             userID,
		ProductID:          gocql.UUID(productID),
		Conditions:         input.Conditions,
		CurrentMedications: input.CurrentMedications,
		IsPregnant:         input.IsPregnant,
		HasAllergies:       input.HasAllergies,
		AllergyDetails:     input.AllergyDetails,
		Status:             models.ApprovalPending,
		CreatedAt:          time.Now(),
	}

	if err := session.Query(`INSERT INTO questionnaire_approvals (approval_id, user_id, product_id,
		conditions, current_medications, is_pregnant, has_allergies, allergy_details,
		status, reviewer_note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		approval.ID, approval.UserID, approval.ProductID,
		approval.Conditions, approval.CurrentMedications, approval.IsPregnant,
		approval.HasAllergies, approval.AllergyDetails,
		approval.Status, "", approval.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement questionnaire"})
		return
	}

	// Index par utilisateur pour l'historique
	if err := session.Query(`INSERT INTO approvals_by_user (user_id, approval_id, product_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		approval.UserID, approval.ID, approval.ProductID, approval.Status, approval.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement questionnaire"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Questionnaire soumis, un pharmacien va l'examiner",
		"approval": approval,
	})
}

//
// 🟢 GET /api/questionnaires — mes questionnaires et leur statut
//
func GetMyQuestionnaires(c *gin.Context) {
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

	type approvalSummary struct {
		ApprovalID gocql.UUID `json:"id"`
		ProductID  gocql.UUID `json:"product_id"`
		Status     string     `json:"status"`
		CreatedAt  time.Time  `json:"created_at"`
	}

	iter := session.Query(`SELECT approval_id, product_id, status, created_at
		FROM approvals_by_user WHERE user_id = ?`, userID).Iter()

	approvals := []approvalSummary{}
	var a approvalSummary
	for iter.Scan(&a.ApprovalID, &a.ProductID, &a.Status, &a.CreatedAt) {
		approvals = append(approvals, a)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture questionnaires"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"approvals": approvals})
}
