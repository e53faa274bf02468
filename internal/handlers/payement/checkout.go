package payement

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/checkout"
	"pharmavia_back_end/internal/models"
)

//
// 🧾 POST /api/checkout/create-order — point d'entrée du workflow de commande.
// Le paiement doit déjà être capturé (PaymentIntent "succeeded") : ici on
// vérifie, on fige le panier et on écrit la commande.
//
func CreateOrder(c *gin.Context) {
	var input struct {
		PaymentIntentID string         `json:"paymentIntentId"`
		GuestEmail      string         `json:"guestEmail"`
		ShippingAddress models.Address `json:"shippingAddress"`
		BillingAddress  models.Address `json:"billingAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentIntentId requis"})
		return
	}
	if input.ShippingAddress.Street == "" || input.ShippingAddress.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison incomplète"})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	guestEmail := strings.ToLower(strings.TrimSpace(input.GuestEmail))

	if userID == "" && guestEmail == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Connexion ou e-mail invité requis"})
		return
	}
	if email == "" {
		email = guestEmail
	}

	cartKey := resolveCartKey(c)
	if cartKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant"})
		return
	}

	// Adresse de facturation absente = identique à la livraison
	billing := input.BillingAddress
	if billing.Street == "" {
		billing = input.ShippingAddress
	}

	result, err := checkout.Default().CreateOrder(context.Background(), checkout.CreateOrderInput{
		PaymentIntentID: input.PaymentIntentID,
		UserID:          userID,
		GuestEmail:      guestEmail,
		Email:           email,
		CartKey:         cartKey,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	if result.AlreadyExisted {
		log.Printf("🔁 PaymentIntent %s déjà consommé, commande %s renvoyée", input.PaymentIntentID, result.Order.ID)
		c.JSON(http.StatusOK, gin.H{
			"message": "Commande déjà enregistrée pour ce paiement",
			"order":   result.Order,
		})
		return
	}

	log.Printf("✅ Commande %s créée (%.2f€) pour %s", result.Order.ID, result.Order.Total, email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande enregistrée avec succès",
		"order":   result.Order,
	})
}

// respondCheckoutError traduit les erreurs du workflow en réponses HTTP
func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
	case errors.Is(err, checkout.ErrPaymentNotSucceeded):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Le paiement n'a pas abouti"})
	case errors.Is(err, checkout.ErrPaymentCheckFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Vérification du paiement impossible, réessayez"})
	case errors.Is(err, checkout.ErrApprovalRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "Questionnaire médical requis ou non approuvé pour un produit du panier"})
	case errors.Is(err, checkout.ErrProductUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Un produit du panier n'est plus disponible"})
	case errors.Is(err, checkout.ErrPersistOrder):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande, vous n'avez pas été débité deux fois"})
	default:
		log.Printf("❌ Erreur checkout inattendue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
	}
}
