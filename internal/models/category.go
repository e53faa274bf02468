package models

import "github.com/gocql/gocql"

type Category struct {
	ID          gocql.UUID `json:"id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	// Les catégories "gated" (ex: traitements sur ordonnance) exigent un
	// questionnaire médical approuvé avant achat
	RequiresQuestionnaire bool `json:"requires_questionnaire" db:"requires_questionnaire"`
}
