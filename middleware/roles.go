package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon/restaurant-api/models"
)

// Role is the request-scoped role tier, resolved once per request from group
// membership. A user in neither staff group is a Customer.
type Role int

const (
	RoleCustomer Role = iota
	RoleDeliveryCrew
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeliveryCrew:
		return "delivery crew"
	default:
		return "customer"
	}
}

// Manager membership wins when a user somehow holds both staff memberships.
func resolveRole(user models.User) Role {
	role := RoleCustomer
	for _, group := range user.Groups {
		switch group.Name {
		case models.GroupManager:
			return RoleManager
		case models.GroupDeliveryCrew:
			role = RoleDeliveryCrew
		}
	}
	return role
}

// IsManagerOrAdmin reports whether the requester may administer catalog,
// staff groups and orders.
func IsManagerOrAdmin(c *gin.Context) bool {
	return CurrentRole(c) == RoleManager || CurrentUser(c).IsAdmin
}

// RequireManagerOrAdmin aborts with 403 unless the requester is a Manager or
// an admin user. Must run after ValidateToken.
func RequireManagerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsManagerOrAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			c.Abort()
			return
		}
		c.Next()
	}
}
