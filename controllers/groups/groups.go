package groupControllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
)

type GroupUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
}

func findGroup(db *gorm.DB, name string) (models.Group, error) {
	var group models.Group
	err := db.Where("name = ?", name).First(&group).Error
	return group, err
}

// GET /groups/{manager,delivery-crew}/users (Manager/Admin)
func GetGroupUsers(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := findGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s group not found.", groupName)})
			return
		}

		var users []models.User
		if err := db.Model(&group).Association("Users").Find(&users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group members"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// POST /groups/{manager,delivery-crew}/users (Manager/Admin)
// Unknown usernames get a user record created before the membership is added.
func AddGroupUser(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GroupUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		group, err := findGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s group not found.", groupName)})
			return
		}

		var user models.User
		err = db.Where("username = ?", input.Username).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = models.User{Username: input.Username, Email: input.Email}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		if err := db.Model(&group).Association("Users").Append(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to group"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// DELETE /groups/{manager,delivery-crew}/users/:id (Manager/Admin)
// Removing the last membership deletes the user record itself.
func RemoveGroupUser(db *gorm.DB, groupName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		group, err := findGroup(db, groupName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s group not found.", groupName)})
			return
		}

		var members []models.User
		if err := db.Model(&group).Association("Users").Find(&members, "users.id = ?", uint(userID)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group member"})
			return
		}
		if len(members) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found in group"})
			return
		}
		user := members[0]

		if err := db.Model(&group).Association("Users").Delete(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from group"})
			return
		}

		remaining := db.Model(&user).Association("Groups").Count()
		if remaining == 0 {
			if err := db.Delete(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "User removed from group"})
	}
}
