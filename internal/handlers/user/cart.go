package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

const cartTTL = 30 * 24 * time.Hour

var errInvalidApproval = errors.New("Approbation de questionnaire invalide pour ce produit")

// CartKey résout la clé Redis du panier : "cart:<user>" pour un client
// connecté, "cart:guest:<id>" pour un invité (id généré côté client, header
// X-Cart-Id)
func CartKey(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return "cart:" + userID
	}
	if guestID := c.GetHeader("X-Cart-Id"); guestID != "" {
		return "cart:guest:" + guestID
	}
	return ""
}

func loadCart(ctx context.Context, key string) []models.CartItem {
	data, _ := database.RedisClient.Get(ctx, key).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}
	return cart
}

func saveCart(ctx context.Context, key string, cart []models.CartItem) {
	jsonData, _ := json.Marshal(cart)
	pipe := database.RedisClient.Pipeline()
	pipe.Set(ctx, key, jsonData, cartTTL)
	pipe.Publish(ctx, key, "updated") // 🔁 Pub/Sub pour la sync WebSocket
	pipe.Exec(ctx)
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
		return
	}

	cart := loadCart(context.Background(), key)
	if cart == nil {
		cart = []models.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": cart})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant (connexion ou X-Cart-Id)"})
		return
	}

	var input struct {
		ProductID   string `json:"productId"`
		Quantity    int    `json:"quantity"`
		Dosage      string `json:"dosage"`
		TabletCount int    `json:"tabletCount"`
		ApprovalID  string `json:"approvalId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// 🧩 Récupération du produit depuis ScyllaDB — le prix lu ici est capturé
	// dans la ligne de panier et deviendra price_at_time à la commande
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	err = session.Query(`SELECT product_id, name, price, image_urls, requires_prescription, dosages, tablet_counts, is_active
		FROM products WHERE product_id = ?`, gocql.UUID(productID)).Scan(
		&p.ID, &p.Name, &p.Price, &p.ImageURLs, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts, &p.IsActive)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit indisponible"})
		return
	}

	// Variante demandée cohérente avec le produit
	if input.Dosage != "" && !contains(p.Dosages, input.Dosage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dosage non proposé pour ce produit"})
		return
	}
	if input.TabletCount != 0 && !containsInt(p.TabletCounts, input.TabletCount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Conditionnement non proposé pour ce produit"})
		return
	}

	// Si une approbation est fournie à l'ajout, on vérifie qu'elle appartient
	// bien à l'acheteur et vise ce produit (le statut est re-vérifié au checkout)
	if input.ApprovalID != "" {
		if err := checkApprovalOwnership(c.GetString("user_id"), input.ApprovalID, p.ID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	imageURL := ""
	if len(p.ImageURLs) > 0 {
		imageURL = p.ImageURLs[0]
	}

	item := models.CartItem{
		ProductID:   input.ProductID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    input.Quantity,
		Dosage:      input.Dosage,
		TabletCount: input.TabletCount,
		ApprovalID:  input.ApprovalID,
		ImageURL:    imageURL,
	}

	ctx := context.Background()
	cart := loadCart(ctx, key)

	// 🔁 Même produit + même variante : on cumule la quantité
	found := false
	for i := range cart {
		if sameLine(cart[i], item) {
			cart[i].Quantity += item.Quantity
			if item.ApprovalID != "" {
				cart[i].ApprovalID = item.ApprovalID
			}
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	saveCart(ctx, key, cart)

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart,
	})
}

//
// 🟡 PUT /api/cart/:productId
//
func UpdateCartItem(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant"})
		return
	}

	var input struct {
		Quantity    int    `json:"quantity"`
		Dosage      string `json:"dosage"`
		TabletCount int    `json:"tabletCount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	cart := loadCart(ctx, key)

	newCart := make([]models.CartItem, 0, len(cart))
	updated := false
	for _, item := range cart {
		if item.ProductID == productID &&
			(input.Dosage == "" || item.Dosage == input.Dosage) &&
			(input.TabletCount == 0 || item.TabletCount == input.TabletCount) {
			updated = true
			if input.Quantity == 0 {
				continue // quantité 0 = suppression de la ligne
			}
			item.Quantity = input.Quantity
		}
		newCart = append(newCart, item)
	}

	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article absent du panier"})
		return
	}

	saveCart(ctx, key, newCart)
	c.JSON(http.StatusOK, gin.H{"items": newCart})
}

//
// ❌ DELETE /api/cart/:productId
//
func RemoveFromCart(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	cart := loadCart(ctx, key)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	saveCart(ctx, key, newCart)
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   newCart,
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	key := CartKey(c)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant panier manquant"})
		return
	}

	ctx := context.Background()
	if err := database.RedisClient.Del(ctx, key).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	database.RedisClient.Publish(ctx, key, "cleared")

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

//
// 🔀 POST /api/cart/merge — fusion du panier invité dans le panier du compte
// après connexion
//
func MergeCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	guestID := c.GetHeader("X-Cart-Id")
	if guestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Header X-Cart-Id manquant"})
		return
	}

	ctx := context.Background()
	userKey := "cart:" + userID
	guestKey := "cart:guest:" + guestID

	merged := MergeCarts(loadCart(ctx, userKey), loadCart(ctx, guestKey))
	saveCart(ctx, userKey, merged)
	database.RedisClient.Del(ctx, guestKey)

	c.JSON(http.StatusOK, gin.H{"items": merged})
}

// MergeCarts fusionne deux paniers : mêmes lignes (produit + variante)
// cumulées, le prix capturé le plus ancien (panier du compte) est conservé
func MergeCarts(base, incoming []models.CartItem) []models.CartItem {
	merged := make([]models.CartItem, len(base))
	copy(merged, base)

	for _, item := range incoming {
		found := false
		for i := range merged {
			if sameLine(merged[i], item) {
				merged[i].Quantity += item.Quantity
				if merged[i].ApprovalID == "" {
					merged[i].ApprovalID = item.ApprovalID
				}
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, item)
		}
	}

	return merged
}

func sameLine(a, b models.CartItem) bool {
	return a.ProductID == b.ProductID && a.Dosage == b.Dosage && a.TabletCount == b.TabletCount
}

func checkApprovalOwnership(userID, approvalID string, productID gocql.UUID) error {
	aid, err := uuid.Parse(approvalID)
	if err != nil {
		return errInvalidApproval
	}

	var ownerID string
	var approvedProduct gocql.UUID
	var status string
	err = database.GetPreparedGetApprovalByID().Bind(gocql.UUID(aid)).Scan(&ownerID, &approvedProduct, &status)
	if err != nil {
		return errInvalidApproval
	}
	if ownerID != userID || approvedProduct != productID {
		return errInvalidApproval
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, n := range list {
		if n == v {
			return true
		}
	}
	return false
}
