package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/services"
)

const allProductsCacheKey = "products:all"

func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix positif obligatoires"})
		return
	}
	if p.CategoryID == (gocql.UUID{}) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'category_id' est obligatoire"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// ✅ Vérifie la catégorie — un produit d'une catégorie "gated" exige une
	// ordonnance, même si le payload dit le contraire
	var categoryName string
	var requiresQuestionnaire bool
	if err := session.Query(`SELECT name, requires_questionnaire FROM categories WHERE category_id = ?`,
		p.CategoryID).Scan(&categoryName, &requiresQuestionnaire); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}
	if requiresQuestionnaire {
		p.RequiresPrescription = true
	}

	p.ID = gocql.TimeUUID()
	p.IsActive = true
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	query := `INSERT INTO products (product_id, name, description, active_substance, price, category_id,
		image_urls, tags, requires_prescription, dosages, tablet_counts, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := session.Query(query, p.ID, p.Name, p.Description, p.ActiveSubstance, p.Price, p.CategoryID,
		p.ImageURLs, p.Tags, p.RequiresPrescription, p.Dosages, p.TabletCounts, p.IsActive,
		p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// ✅ Index par catégorie pour le listing rayon
	if err := session.Query(`INSERT INTO products_by_category (category_id, product_id, name, price, requires_prescription, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.ID, p.Name, p.Price, p.RequiresPrescription, p.IsActive).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation products_by_category: %v", err)
	}

	// 🔄 Indexation Elasticsearch + invalidation du cache
	go services.IndexProduct(p)
	database.RedisClient.Del(context.Background(), allProductsCacheKey)

	c.JSON(http.StatusCreated, p)
}

func GetAllProducts(c *gin.Context) {
	ctx := context.Background()

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, allProductsCacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, name, description, active_substance, price, category_id,
		image_urls, tags, requires_prescription, dosages, tablet_counts, is_active, created_at, updated_at
		FROM products`).Iter()

	products := []models.Product{}
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.ActiveSubstance, &p.Price, &p.CategoryID,
		&p.ImageURLs, &p.Tags, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, allProductsCacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

func GetProductsByCategory(c *gin.Context) {
	catUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de catégorie invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, name, price, requires_prescription, is_active
		FROM products_by_category WHERE category_id = ?`, catUUID).Iter()

	products := []models.Product{}
	var p models.Product

	for iter.Scan(&p.ID, &p.Name, &p.Price, &p.RequiresPrescription, &p.IsActive) {
		if p.IsActive {
			p.CategoryID = catUUID
			products = append(products, p)
		}
		p = models.Product{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func UpdateProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name            *string   `json:"name"`
		Description     *string   `json:"description"`
		ActiveSubstance *string   `json:"active_substance"`
		Price           *float64  `json:"price"`
		Tags            *[]string `json:"tags"`
		Dosages         *[]string `json:"dosages"`
		TabletCounts    *[]int    `json:"tablet_counts"`
		IsActive        *bool     `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Price != nil && *input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	old, err := fetchProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	p := *old
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.ActiveSubstance != nil {
		p.ActiveSubstance = *input.ActiveSubstance
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Tags != nil {
		p.Tags = *input.Tags
	}
	if input.Dosages != nil {
		p.Dosages = *input.Dosages
	}
	if input.TabletCounts != nil {
		p.TabletCounts = *input.TabletCounts
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
	now := time.Now()
	p.UpdatedAt = &now

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE products SET name = ?, description = ?, active_substance = ?, price = ?,
		tags = ?, dosages = ?, tablet_counts = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		p.Name, p.Description, p.ActiveSubstance, p.Price, p.Tags, p.Dosages, p.TabletCounts,
		p.IsActive, p.UpdatedAt, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	if err := session.Query(`UPDATE products_by_category SET name = ?, price = ?, is_active = ?
		WHERE category_id = ? AND product_id = ?`,
		p.Name, p.Price, p.IsActive, p.CategoryID, productID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour products_by_category: %v", err)
	}

	go services.IndexProduct(p)
	database.RedisClient.Del(context.Background(), allProductsCacheKey)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct désactive le produit (soft delete) : les commandes passées
// gardent leurs lignes, le produit sort du catalogue et de l'index
func DeleteProduct(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	old, err := fetchProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	if err := session.Query(`UPDATE products SET is_active = false, updated_at = ? WHERE product_id = ?`,
		now, productID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	if err := session.Query(`UPDATE products_by_category SET is_active = false
		WHERE category_id = ? AND product_id = ?`, old.CategoryID, productID).Exec(); err != nil {
		log.Printf("⚠️ Erreur mise à jour products_by_category: %v", err)
	}

	go services.RemoveProductFromIndex(productID.String())
	database.RedisClient.Del(context.Background(), allProductsCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Produit retiré du catalogue"})
}

func fetchProduct(productID gocql.UUID) (*models.Product, error) {
	var p models.Product
	err := database.GetPreparedGetProductByID().Bind(productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.ActiveSubstance, &p.Price, &p.CategoryID,
		&p.ImageURLs, &p.Tags, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
