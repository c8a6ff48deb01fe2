package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
)

const (
	userKey = "current_user"
	roleKey = "current_role"
)

// ValidateToken authenticates the request from its bearer token, loads the
// user with group memberships and resolves the role once for the whole
// request lifecycle.
func ValidateToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		rawID, ok := claims["user_id"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Preload("Groups").First(&user, uint(rawID)).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Set(roleKey, resolveRole(user))
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by ValidateToken.
func CurrentUser(c *gin.Context) models.User {
	if v, ok := c.Get(userKey); ok {
		return v.(models.User)
	}
	return models.User{}
}

// CurrentRole returns the role resolved for this request.
func CurrentRole(c *gin.Context) Role {
	if v, ok := c.Get(roleKey); ok {
		return v.(Role)
	}
	return RoleCustomer
}
