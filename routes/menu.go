package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	categoryControllers "github.com/littlelemon/restaurant-api/controllers/category"
	menuControllers "github.com/littlelemon/restaurant-api/controllers/menu"
	"github.com/littlelemon/restaurant-api/middleware"
)

// SetupMenuRoutes registers the catalog surface: categories and menu items.
// Reads are open to any authenticated user; writes require Manager or Admin.
func SetupMenuRoutes(r *gin.Engine, db *gorm.DB) {
	categories := r.Group("/categories")
	categories.Use(middleware.ValidateToken(db))
	{
		categories.GET("", categoryControllers.GetCategories(db))
		categories.GET("/:id", categoryControllers.GetCategoryByID(db))
		categories.POST("", middleware.RequireManagerOrAdmin(), categoryControllers.CreateCategory(db))
	}

	menuItems := r.Group("/menu-items")
	menuItems.Use(middleware.ValidateToken(db))
	{
		menuItems.GET("", menuControllers.GetMenuItems(db))
		menuItems.GET("/:id", menuControllers.GetMenuItem(db))

		manager := menuItems.Group("")
		manager.Use(middleware.RequireManagerOrAdmin())
		{
			manager.POST("", menuControllers.CreateMenuItem(db))
			manager.PUT("/:id", menuControllers.UpdateMenuItem(db))
			manager.PATCH("/:id", menuControllers.UpdateMenuItem(db))
			manager.DELETE("/:id", menuControllers.DeleteMenuItem(db))
			manager.GET("/export", menuControllers.ExportMenuItemsToExcel(db))
		}
	}
}
