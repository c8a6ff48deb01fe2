package orderControllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/restaurant-api/middleware"
	"github.com/littlelemon/restaurant-api/models"
	"github.com/littlelemon/restaurant-api/pagination"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Sortable columns for order listings.
var sortColumns = map[string]string{
	"date":   "date",
	"total":  "total",
	"status": "status",
}

type UpdateOrderRequest struct {
	DeliveryCrew *uint `json:"delivery_crew"`
	Status       *int  `json:"status"`
}

const invalidStatusMsg = "Invalid status value. Status must be 0 (out for delivery) or 1 (delivered)."

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}

// scopedOrders narrows the base order query to what the requester's role may
// see: managers and admins everything, delivery crew their assigned orders,
// customers their own.
func scopedOrders(db *gorm.DB, c *gin.Context) *gorm.DB {
	query := db.Model(&models.Order{})
	if middleware.IsManagerOrAdmin(c) {
		return query
	}
	user := middleware.CurrentUser(c)
	if middleware.CurrentRole(c) == middleware.RoleDeliveryCrew {
		return query.Where("orders.delivery_crew_id = ?", user.ID)
	}
	return query.Where("orders.user_id = ?", user.ID)
}

// GET /orders
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		sortBy := c.Query("sort_by")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := scopedOrders(db, c)

		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.
				Joins("JOIN users AS customers ON customers.id = orders.user_id").
				Joins("LEFT JOIN users AS crew ON crew.id = orders.delivery_crew_id").
				Where("LOWER(customers.username) LIKE ? OR LOWER(crew.username) LIKE ?", like, like)
		}

		orderClause := "date desc"
		if column, ok := sortColumns[sortBy]; ok {
			orderClause = column + " " + sortOrder
		} else if sortBy != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by field"})
			return
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		page := pagination.Parse(c, defaultPageSize, maxPageSize)
		var orders []models.Order
		if err := query.
			Select("orders.*").
			Preload("Items").
			Order(orderClause).
			Limit(page.PageSize).
			Offset(page.Offset()).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"count":     total,
			"page":      page.Page,
			"page_size": page.PageSize,
			"results":   orders,
		})
	}
}

// POST /orders
// Converts the requester's cart into an order. The order row, its item
// snapshots and the cart clear commit or roll back together.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := middleware.CurrentRole(c)
		if role == middleware.RoleManager || role == middleware.RoleDeliveryCrew {
			c.JSON(http.StatusNotFound, gin.H{"error": "Only customers can create orders."})
			return
		}
		user := middleware.CurrentUser(c)

		var cartItems []models.CartItem
		if err := db.Where("user_id = ?", user.ID).Find(&cartItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cartItems) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Your cart is empty. Add items to your cart before placing an order."})
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var total float64
			for _, item := range cartItems {
				total += item.Price
			}

			order = models.Order{
				UserID: user.ID,
				Status: models.OrderStatusPlaced,
				Total:  total,
				Date:   time.Now(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			orderItems := make([]models.OrderItem, 0, len(cartItems))
			for _, item := range cartItems {
				orderItems = append(orderItems, models.OrderItem{
					OrderID:    order.ID,
					MenuItemID: item.MenuItemID,
					Quantity:   item.Quantity,
					UnitPrice:  item.UnitPrice,
					Price:      item.Price,
				})
			}
			if err := tx.Create(&orderItems).Error; err != nil {
				return err
			}

			if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}

			order.Items = orderItems
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var order models.Order
		if err := scopedOrders(db, c).
			Preload("Items").
			First(&order, "orders.id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT/PATCH /orders/:id
// Managers and admins may assign delivery crew and/or set the status; crew
// members must supply a valid status and may change nothing else; customers
// get a flat 403.
func UpdateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var order models.Order
		if err := scopedOrders(db, c).
			First(&order, "orders.id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		switch {
		case middleware.IsManagerOrAdmin(c):
			if req.DeliveryCrew != nil {
				var crewCount int64
				if err := db.Model(&models.User{}).
					Joins("JOIN user_groups ON user_groups.user_id = users.id").
					Joins("JOIN groups ON groups.id = user_groups.group_id").
					Where("users.id = ? AND groups.name = ?", *req.DeliveryCrew, models.GroupDeliveryCrew).
					Count(&crewCount).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate delivery crew user"})
					return
				}
				if crewCount == 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery crew user."})
					return
				}
				order.DeliveryCrewID = req.DeliveryCrew
			}
			if req.Status != nil {
				status := models.OrderStatus(*req.Status)
				if !status.Valid() {
					c.JSON(http.StatusBadRequest, gin.H{"error": invalidStatusMsg})
					return
				}
				order.Status = status
			}

		case middleware.CurrentRole(c) == middleware.RoleDeliveryCrew:
			if req.DeliveryCrew != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery crew may only update the order status."})
				return
			}
			if req.Status == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalidStatusMsg})
				return
			}
			status := models.OrderStatus(*req.Status)
			if !status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalidStatusMsg})
				return
			}
			order.Status = status

		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action."})
			return
		}

		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}

		broadcastOrderUpdate(order)
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id (Manager/Admin)
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		var order models.Order
		if err := scopedOrders(db, c).
			First(&order, "orders.id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if !middleware.IsManagerOrAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this order."})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
