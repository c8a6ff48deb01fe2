package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/littlelemon/restaurant-api/controllers/order"
	"github.com/littlelemon/restaurant-api/middleware"
)

// SetupOrderRoutes registers the order lifecycle endpoints. Role scoping
// happens inside the handlers, not at the route level.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(db))
	{
		orders.GET("", orderControllers.GetOrders(db))
		orders.POST("", orderControllers.CreateOrder(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderUpdatesHandler)

		orders.GET("/:id", orderControllers.GetOrder(db))
		orders.PUT("/:id", orderControllers.UpdateOrder(db))
		orders.PATCH("/:id", orderControllers.UpdateOrder(db))
		orders.DELETE("/:id", orderControllers.DeleteOrder(db))
	}
}
