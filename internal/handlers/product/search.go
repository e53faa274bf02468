package product

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
	"pharmavia_back_end/internal/services"
)

//
// 🔎 GET /api/products/search?q= — Elasticsearch prioritaire, fallback scan
// Scylla filtré en mémoire si l'index est vide ou indisponible
//
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		// ✅ URLs signées MinIO pour chaque résultat
		for i := range results {
			if urls, ok := results[i]["image_urls"].([]interface{}); ok {
				signed := []string{}
				for _, u := range urls {
					if str, ok := u.(string); ok && str != "" {
						signedURL, err := services.GenerateSignedURL(context.Background(), str, 24*time.Hour)
						if err == nil {
							signed = append(signed, signedURL)
						}
					}
				}
				results[i]["image_urls"] = signed
			}
		}
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 Fallback ScyllaDB — scan complet filtré en mémoire, Scylla n'a pas de
	// LIKE natif
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
		if p.IsActive && matchesQuery(p, query) {
			products = append(products, p)
		}
		p = models.Product{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func matchesQuery(p models.Product, query string) bool {
	if containsIgnoreCase(p.Name, query) ||
		containsIgnoreCase(p.Description, query) ||
		containsIgnoreCase(p.ActiveSubstance, query) {
		return true
	}
	for _, tag := range p.Tags {
		if containsIgnoreCase(tag, query) {
			return true
		}
	}
	return false
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
