package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/services"
)

//
// 🟢 GET /api/products/:id — fiche produit publique. Chaque consultation
// alimente le score de popularité (au plus une vue par IP et par produit toutes
// les 60 secondes).
//
func GetProductByID(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := fetchProduct(productID)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 📈 Comptage de vue, jamais bloquant pour la fiche
	services.RecordProductView(c.ClientIP(), productID.String())

	// ✅ URLs signées MinIO pour les images
	signed := []string{}
	for _, u := range p.ImageURLs {
		if u == "" {
			continue
		}
		signedURL, err := services.GenerateSignedURL(context.Background(), u, 24*time.Hour)
		if err == nil {
			signed = append(signed, signedURL)
		}
	}
	p.ImageURLs = signed

	c.JSON(http.StatusOK, p)
}

//
// 🟢 GET /api/products/popular — produits les plus consultés, score décroissant
//
func GetPopularProducts(c *gin.Context) {
	ids, err := services.TopProducts(context.Background(), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture popularité"})
		return
	}

	products := []*models.Product{}
	for _, id := range ids {
		productID, err := gocql.ParseUUID(id)
		if err != nil {
			continue
		}
		p, err := fetchProduct(productID)
		if err != nil || !p.IsActive {
			continue
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
