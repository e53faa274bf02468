package checkout

import (
	"context"

	"github.com/gocql/gocql"

	"pharmavia_back_end/internal/database"
	"pharmavia_back_end/internal/models"
)

// ScyllaCatalog résout les produits depuis le keyspace products
type ScyllaCatalog struct{}

func (ScyllaCatalog) GetProduct(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	var p models.Product
	err = session.Query(`SELECT product_id, name, description, active_substance, price, category_id,
		image_urls, tags, requires_prescription, dosages, tablet_counts, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`, productID).WithContext(ctx).Scan(
		&p.ID, &p.Name, &p.Description, &p.ActiveSubstance, &p.Price, &p.CategoryID,
		&p.ImageURLs, &p.Tags, &p.RequiresPrescription, &p.Dosages, &p.TabletCounts,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ScyllaApprovals résout les questionnaires médicaux depuis le keyspace users
type ScyllaApprovals struct{}

func (ScyllaApprovals) GetApproval(ctx context.Context, approvalID gocql.UUID) (*models.QuestionnaireApproval, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	a := models.QuestionnaireApproval{ID: approvalID}
	err = session.Query("SELECT user_id, product_id, status FROM questionnaire_approvals WHERE approval_id = ?",
		approvalID).WithContext(ctx).Scan(&a.UserID, &a.ProductID, &a.Status)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
