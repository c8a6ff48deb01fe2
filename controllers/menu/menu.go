package menuControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/pagination"
)

const (
	defaultPageSize = 5
	maxPageSize     = 50
)

// Sortable columns for menu item listings.
var sortColumns = map[string]string{
	"price":     "price",
	"inventory": "inventory",
}

type MenuItemInput struct {
	Title      string  `json:"title" binding:"required"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	Featured   bool    `json:"featured"`
	Inventory  int     `json:"inventory"`
	CategoryID uint    `json:"category_id" binding:"required"`
}

type MenuItemUpdate struct {
	Title      *string  `json:"title"`
	Price      *float64 `json:"price"`
	Featured   *bool    `json:"featured"`
	Inventory  *int     `json:"inventory"`
	CategoryID *uint    `json:"category_id"`
}

// GET /menu-items
func GetMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		sortBy := c.Query("sort_by")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "asc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "asc"
		}

		query := db.Model(&models.MenuItem{})

		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.
				Joins("JOIN categories ON categories.id = menu_items.category_id").
				Where("LOWER(menu_items.title) LIKE ? OR LOWER(categories.title) LIKE ?", like, like)
		}

		orderClause := "menu_items.id"
		if column, ok := sortColumns[sortBy]; ok {
			orderClause = column + " " + sortOrder
		} else if sortBy != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by field"})
			return
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count menu items"})
			return
		}

		page := pagination.Parse(c, defaultPageSize, maxPageSize)
		var items []models.MenuItem
		if err := query.
			Select("menu_items.*").
			Preload("Category").
			Order(orderClause).
			Limit(page.PageSize).
			Offset(page.Offset()).
			Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count":     total,
			"page":      page.Page,
			"page_size": page.PageSize,
			"results":   items,
		})
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return 0, false
	}
	return uint(id), true
}

// GET /menu-items/:id
func GetMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var item models.MenuItem
		if err := db.Preload("Category").First(&item, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// POST /menu-items (Manager/Admin)
func CreateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		item := models.MenuItem{
			Title:      input.Title,
			Price:      input.Price,
			Featured:   input.Featured,
			Inventory:  input.Inventory,
			CategoryID: input.CategoryID,
			Category:   category,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// PUT/PATCH /menu-items/:id (Manager/Admin)
func UpdateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		var input MenuItemUpdate
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Title != nil {
			item.Title = *input.Title
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
				return
			}
			item.Price = *input.Price
		}
		if input.Featured != nil {
			item.Featured = *input.Featured
		}
		if input.Inventory != nil {
			item.Inventory = *input.Inventory
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			item.CategoryID = *input.CategoryID
			item.Category = category
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /menu-items/:id (Manager/Admin)
func DeleteMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var item models.MenuItem
		if err := db.First(&item, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
	}
}
