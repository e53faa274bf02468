package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de validation d'un questionnaire médical
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// QuestionnaireApproval : réponses au formulaire d'éligibilité médicale pour un
// produit donné. Un article du panier visant un produit sur ordonnance doit
// référencer une approbation "approved" portant sur le même produit.
type QuestionnaireApproval struct {
	ID                 gocql.UUID `json:"id" db:"approval_id"`
	UserID             string     `json:"user_id" db:"user_id"`
	ProductID          gocql.UUID `json:"product_id" db:"product_id"`
	Conditions         []string   `json:"conditions" db:"conditions"`
	CurrentMedications []string   `json:"current_medications" db:"current_medications"`
	IsPregnant         bool       `json:"is_pregnant" db:"is_pregnant"`
	HasAllergies       bool       `json:"has_allergies" db:"has_allergies"`
	AllergyDetails     string     `json:"allergy_details,omitempty" db:"allergy_details"`
	Status             string     `json:"status" db:"status"`
	ReviewerNote       string     `json:"reviewer_note,omitempty" db:"reviewer_note"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty" db:"reviewed_at"`
}
