package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	ConsultationRequested = "requested"
	ConsultationScheduled = "scheduled"
	ConsultationClosed    = "closed"
)

// Consultation : demande de rendez-vous avec un pharmacien/médecin partenaire
type Consultation struct {
	ID            gocql.UUID `json:"id" db:"consultation_id"`
	UserID        string     `json:"user_id" db:"user_id"`
	Email         string     `json:"email" db:"email"`
	Subject       string     `json:"subject" db:"subject"`
	Message       string     `json:"message" db:"message"`
	PreferredSlot string     `json:"preferred_slot,omitempty" db:"preferred_slot"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
