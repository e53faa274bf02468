package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// cartSyncPayload construit le message poussé aux clients connectés après un
// changement de panier
func cartSyncPayload(cart []models.CartItem) map[string]interface{} {
	if cart == nil {
		cart = []models.CartItem{}
	}

	total := 0.0
	count := 0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}

	return map[string]interface{}{
		"type":  "cart_updated",
		"items": cart,
		"total": total,
		"count": count,
	}
}

// CartWebSocket gère la synchronisation temps réel du panier : un onglet qui
// modifie le panier notifie les autres via Redis Pub/Sub (canal = clé du
// panier, connecté ou invité)
func CartWebSocket(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant (connexion ou X-Cart-Id)"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.RedisClient.Subscribe(ctx, key)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			data, err := database.RedisClient.Get(ctx, key).Result()
			var cart []models.CartItem
			if err == nil && data != "" {
				json.Unmarshal([]byte(data), &cart)
			}

			if err := conn.WriteJSON(cartSyncPayload(cart)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
