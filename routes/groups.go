package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	groupControllers "github.com/littlelemon/restaurant-api/controllers/groups"
	"github.com/littlelemon/restaurant-api/middleware"
	"github.com/littlelemon/restaurant-api/models"
)

// SetupGroupRoutes registers the staff membership endpoints. Every endpoint
// requires Manager or Admin.
func SetupGroupRoutes(r *gin.Engine, db *gorm.DB) {
	groups := r.Group("/groups")
	groups.Use(middleware.ValidateToken(db), middleware.RequireManagerOrAdmin())
	{
		manager := groups.Group("/manager/users")
		{
			manager.GET("", groupControllers.GetGroupUsers(db, models.GroupManager))
			manager.POST("", groupControllers.AddGroupUser(db, models.GroupManager))
			manager.DELETE("/:id", groupControllers.RemoveGroupUser(db, models.GroupManager))
		}

		deliveryCrew := groups.Group("/delivery-crew/users")
		{
			deliveryCrew.GET("", groupControllers.GetGroupUsers(db, models.GroupDeliveryCrew))
			deliveryCrew.POST("", groupControllers.AddGroupUser(db, models.GroupDeliveryCrew))
			deliveryCrew.DELETE("/:id", groupControllers.RemoveGroupUser(db, models.GroupDeliveryCrew))
		}
	}
}
