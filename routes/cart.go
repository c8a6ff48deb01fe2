package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/littlelemon/restaurant-api/controllers/cart"
	"github.com/littlelemon/restaurant-api/middleware"
)

// SetupCartRoutes registers the per-user cart endpoints. Every query is
// scoped to the authenticated requester.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart/menu-items")
	cart.Use(middleware.ValidateToken(db))
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("", cartControllers.UpsertCartItem(db))
		cart.DELETE("", cartControllers.ClearCart(db))
	}
}
