package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande
const (
	StatusProcessing     = "processing"
	StatusPacked         = "packed"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

type Order struct {
	ID              gocql.UUID `json:"id" db:"order_id"`
	UserID          string     `json:"user_id,omitempty" db:"user_id"`
	GuestEmail      string     `json:"guest_email,omitempty" db:"guest_email"`
	PaymentIntentID string     `json:"payment_intent_id" db:"payment_intent_id"`
	Subtotal        float64    `json:"subtotal" db:"subtotal"`
	ShippingCost    float64    `json:"shipping_cost" db:"shipping_cost"`
	Total           float64    `json:"total" db:"total"`
	Status          string     `json:"status" db:"status"`
	ShippingAddress Address    `json:"shipping_address"`
	BillingAddress  Address    `json:"billing_address"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	// Horodaté une seule fois, au passage vers out_for_delivery
	OutForDeliveryAt *time.Time `json:"out_for_delivery_at,omitempty" db:"out_for_delivery_at"`
}

type OrderItem struct {
	OrderID     gocql.UUID `json:"order_id" db:"order_id"`
	ProductID   gocql.UUID `json:"product_id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Quantity    int        `json:"quantity" db:"quantity"`
	PriceAtTime float64    `json:"price_at_time" db:"price_at_time"`
	Dosage      string     `json:"dosage,omitempty" db:"dosage"`
	TabletCount int        `json:"tablet_count,omitempty" db:"tablet_count"`
}

// orderTransitions : processing → packed → out_for_delivery → delivered,
// cancelled accessible depuis tout état sauf delivered.
var orderTransitions = map[string][]string{
	StatusProcessing:     {StatusPacked, StatusCancelled},
	StatusPacked:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// IsValidStatus vérifie qu'un statut existe
func IsValidStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransition autorise le passage from → to. Re-poser le même statut est
// accepté (idempotent), sans aucun effet de bord.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatuses liste les statuts connus (pour les messages d'erreur admin)
func ValidStatuses() []string {
	return []string{StatusProcessing, StatusPacked, StatusOutForDelivery, StatusDelivered, StatusCancelled}
}
