package payement

import (
	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/models"
)

func calcTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// resolveCartKey : même résolution que côté panier — client connecté ou invité
// identifié par le header X-Cart-Id
func resolveCartKey(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return "cart:" + userID
	}
	if guestID := c.GetHeader("X-Cart-Id"); guestID != "" {
		return "cart:guest:" + guestID
	}
	return ""
}
