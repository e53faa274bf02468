package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/handlers/user"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/utils"
)

// GetAllOrders liste les commandes pour le back-office, filtrables par statut
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	statusFilter := c.Query("status")
	if statusFilter != "" && !models.IsValidStatus(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Statut inconnu",
			"statuses": models.ValidStatuses(),
		})
		return
	}

	iter := session.Query(`SELECT order_id, user_id, guest_email, total, status, created_at FROM orders`).Iter()
	defer iter.Close()

	type row struct {
		OrderID    gocql.UUID `json:"id"`
		UserID     string     `json:"user_id,omitempty"`
		GuestEmail string     `json:"guest_email,omitempty"`
		Total      float64    `json:"total"`
		Status     string     `json:"status"`
		CreatedAt  time.Time  `json:"created_at"`
	}

	orders := []row{}
	var r row
	for iter.Scan(&r.OrderID, &r.UserID, &r.GuestEmail, &r.Total, &r.Status, &r.CreatedAt) {
		if statusFilter != "" && r.Status != statusFilter {
			continue
		}
		orders = append(orders, r)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrderDetails renvoie une commande complète, sans contrôle de propriété
// (réservé au back-office)
func GetOrderDetails(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	order, err := user.FetchOrder(orderID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// applyStatusTransition reporte le nouveau statut sur la commande et indique
// si out_for_delivery_at doit être écrit. L'horodatage n'est posé qu'une seule
// fois, au premier passage en out_for_delivery : un passage répété ne le
// touche plus.
func applyStatusTransition(order *models.Order, newStatus string, now time.Time) bool {
	stamp := newStatus == models.StatusOutForDelivery && order.OutForDeliveryAt == nil
	if stamp {
		order.OutForDeliveryAt = &now
	}
	order.Status = newStatus
	order.UpdatedAt = now
	return stamp
}

// UpdateOrderStatus fait avancer une commande dans le cycle
// processing → packed → out_for_delivery → delivered (annulation possible tant
// que non livrée). Re-poser le statut courant est idempotent : aucune écriture,
// aucun e-mail.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Statut inconnu",
			"statuses": models.ValidStatuses(),
		})
		return
	}

	order, err := user.FetchOrder(orderID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande"})
		return
	}

	if !models.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Transition interdite: " + order.Status + " → " + req.Status,
		})
		return
	}

	if order.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{
			"message": "Statut inchangé",
			"order":   order,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	oldStatus := order.Status

	if applyStatusTransition(order, req.Status, now) {
		err = session.Query(`UPDATE orders SET status = ?, updated_at = ?, out_for_delivery_at = ? WHERE order_id = ?`,
			req.Status, now, now, orderID).Exec()
	} else {
		err = session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
			req.Status, now, orderID).Exec()
	}
	if err != nil {
		log.Printf("❌ Erreur mise à jour statut commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du statut"})
		return
	}

	// Index dénormalisé — best-effort, la table principale fait foi
	ownerVal := order.UserID
	if ownerVal == "" {
		ownerVal = order.GuestEmail
	}
	if err := session.Query(`UPDATE orders_by_user SET status = ? WHERE owner = ? AND order_id = ?`,
		req.Status, ownerVal, orderID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour orders_by_user pour %s: %v", orderID, err)
	}

	// Log d'audit
	utils.LogAction(c, models.ActionOrderStatusChange, models.ResourceOrder, orderID.String(),
		gin.H{"status": oldStatus}, gin.H{"status": req.Status})

	// 📧 Notification client, sans bloquer la réponse
	recipient := order.GuestEmail
	if order.UserID != "" {
		var email, password, name, role string
		if dbErr := database.GetPreparedGetUserByID().Bind(order.UserID).Scan(&email, &password, &name, &role); dbErr == nil {
			recipient = email
		}
	}
	if recipient != "" {
		snapshot := *order
		utils.RunBestEffort("email statut commande", func() error {
			return utils.SendOrderStatusEmail(snapshot, recipient, snapshot.Status)
		})
	}

	log.Printf("✅ Commande %s: %s → %s", orderID, oldStatus, req.Status)
	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"order":   order,
	})
}
