package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID                   gocql.UUID `json:"id" db:"product_id"`
	Name                 string     `json:"name" db:"name"`
	Description          string     `json:"description" db:"description"`
	ActiveSubstance      string     `json:"active_substance" db:"active_substance"`
	Price                float64    `json:"price" db:"price"`
	CategoryID           gocql.UUID `json:"category_id" db:"category_id"`
	ImageURLs            []string   `json:"image_urls" db:"image_urls"`
	Tags                 []string   `json:"tags" db:"tags"`
	RequiresPrescription bool       `json:"requires_prescription" db:"requires_prescription"`
	Dosages              []string   `json:"dosages" db:"dosages"`
	TabletCounts         []int      `json:"tablet_counts" db:"tablet_counts"`
	IsActive             bool       `json:"is_active" db:"is_active"`
	CreatedAt            *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at" db:"updated_at"`
}
