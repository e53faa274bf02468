package routes

import (
	"github.com/gin-gonic/gin"

	"pharmavia_back_end/internal/handlers/admin"
	"pharmavia_back_end/internal/handlers/payement"
	"pharmavia_back_end/internal/handlers/product"
	"pharmavia_back_end/internal/handlers/user"
	"pharmavia_back_end/internal/middleware"
	"pharmavia_back_end/internal/models"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// ================== AUTH ==================
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RegisterRateLimit(), user.CreateUser)
		auth.POST("/login", middleware.LoginRateLimit(), user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.GetMe)
	}

	// ================== CATALOGUE (public) ==================
	products := api.Group("/products")
	{
		products.GET("", product.GetAllProducts)
		products.GET("/popular", product.GetPopularProducts)
		products.GET("/search", middleware.SearchRateLimit(), product.SearchProducts)
		products.GET("/:id", product.GetProductByID)
	}
	api.GET("/categories", product.GetAllCategories)
	api.GET("/categories/:id/products", product.GetProductsByCategory)

	// ================== PANIER (connecté ou invité) ==================
	cart := api.Group("/cart")
	cart.Use(middleware.AuthOptional(), middleware.CartRateLimit())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.PUT("/:productId", user.UpdateCartItem)
		cart.DELETE("/clear", user.ClearCart)
		cart.DELETE("/:productId", user.RemoveFromCart)
	}
	api.POST("/cart/merge", middleware.AuthRequired(), user.MergeCart)
	api.GET("/cart/ws", middleware.AuthOptional(), user.CartWebSocket)

	// ================== PAIEMENT & CHECKOUT ==================
	api.POST("/create-payment-intent", middleware.AuthOptional(), payement.CreatePaymentIntent)
	api.POST("/checkout/create-order", middleware.AuthOptional(), payement.CreateOrder)
	api.POST("/stripe/webhook", payement.StripeWebhook)

	// ================== COMMANDES CLIENT ==================
	orders := api.Group("/orders")
	orders.Use(middleware.AuthOptional())
	{
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
	}

	// ================== QUESTIONNAIRES & CONSULTATIONS ==================
	api.POST("/questionnaires", middleware.AuthRequired(), user.SubmitQuestionnaire)
	api.GET("/questionnaires", middleware.AuthRequired(), user.GetMyQuestionnaires)
	api.POST("/consultations", middleware.AuthOptional(), user.RequestConsultation)
	api.GET("/consultations", middleware.AuthRequired(), user.GetMyConsultations)

	// ================== BACK-OFFICE PHARMACIEN ==================
	pharmacist := api.Group("/pharmacist")
	pharmacist.Use(middleware.AuthRequired(), middleware.RequirePharmacist)
	{
		pharmacist.GET("/questionnaires", admin.GetPendingQuestionnaires)
		pharmacist.PUT("/questionnaires/:id", admin.ReviewQuestionnaire)
		pharmacist.GET("/consultations", admin.GetAllConsultations)
		pharmacist.PUT("/consultations/:id", admin.UpdateConsultationStatus)
		pharmacist.GET("/orders", admin.GetAllOrders)
		pharmacist.GET("/orders/:id", admin.GetOrderDetails)
		pharmacist.PUT("/orders/:id/status", admin.UpdateOrderStatus)
	}

	// ================== BACK-OFFICE ADMIN ==================
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.POST("/products",
			middleware.AuditAdminAction(models.ActionProductCreate, models.ResourceProduct),
			product.CreateProduct)
		adminGroup.PUT("/products/:id",
			middleware.AuditAdminAction(models.ActionProductUpdate, models.ResourceProduct),
			product.UpdateProduct)
		adminGroup.DELETE("/products/:id",
			middleware.AuditAdminAction(models.ActionProductDelete, models.ResourceProduct),
			product.DeleteProduct)
		adminGroup.POST("/products/:id/images", product.UploadProductImage)
		adminGroup.POST("/categories", product.CreateCategory)

		adminGroup.GET("/users", admin.GetAllUsers)
		adminGroup.PUT("/users/:id/role", admin.UpdateUserRole)

		adminGroup.GET("/audit", admin.GetAuditLogs)
	}
}
