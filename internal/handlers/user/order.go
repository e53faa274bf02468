package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// résumé renvoyé par orders_by_user
type orderSummary struct {
	OrderID   gocql.UUID `json:"id"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

//
// 🟢 GET /api/orders — historique du client connecté. Pas de listing invité :
// une adresse e-mail seule ne prouve pas la propriété, un invité suit sa
// commande par son id (+ guest_email) sur GET /api/orders/:id
//
func GetMyOrders(c *gin.Context) {
	owner := c.GetString("user_id")
	if owner == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id, total, status, created_at FROM orders_by_user WHERE owner = ?`, owner).Iter()

	orders := []orderSummary{}
	var s orderSummary
	for iter.Scan(&s.OrderID, &s.Total, &s.Status, &s.CreatedAt) {
		orders = append(orders, s)
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🟢 GET /api/orders/:id — détail d'une commande, réservé à son propriétaire
//
func GetOrderByID(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := FetchOrder(orderID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	// Contrôle de propriété : user_id du token, ou e-mail invité fourni
	userID := c.GetString("user_id")
	guestEmail := strings.ToLower(strings.TrimSpace(c.Query("guest_email")))
	isOwner := (order.UserID != "" && order.UserID == userID) ||
		(order.UserID == "" && order.GuestEmail != "" && order.GuestEmail == guestEmail)
	if !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé à cette commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// FetchOrder charge une commande complète (en-tête + lignes)
func FetchOrder(orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var o models.Order
	var outForDelivery time.Time
	err = session.Query(`SELECT order_id, user_id, guest_email, payment_intent_id,
		subtotal, shipping_cost, total, status,
		shipping_name, shipping_street, shipping_city, shipping_postal_code, shipping_country, shipping_phone,
		billing_name, billing_street, billing_city, billing_postal_code, billing_country, billing_phone,
		created_at, updated_at, out_for_delivery_at
		FROM orders WHERE order_id = ?`, orderID).Scan(
		&o.ID, &o.UserID, &o.GuestEmail, &o.PaymentIntentID,
		&o.Subtotal, &o.ShippingCost, &o.Total, &o.Status,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Street, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country, &o.ShippingAddress.Phone,
		&o.BillingAddress.FullName, &o.BillingAddress.Street, &o.BillingAddress.City,
		&o.BillingAddress.PostalCode, &o.BillingAddress.Country, &o.BillingAddress.Phone,
		&o.CreatedAt, &o.UpdatedAt, &outForDelivery)
	if err != nil {
		return nil, err
	}
	if !outForDelivery.IsZero() {
		o.OutForDeliveryAt = &outForDelivery
	}

	iter := session.Query(`SELECT order_id, product_id, name, quantity, price_at_time, dosage, tablet_count
		FROM order_items WHERE order_id = ?`, orderID).Iter()

	var item models.OrderItem
	for iter.Scan(&item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.PriceAtTime, &item.Dosage, &item.TabletCount) {
		o.Items = append(o.Items, item)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return &o, nil
}
