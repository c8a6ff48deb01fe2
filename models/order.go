package models

import "time"

type OrderStatus int

const (
	// OrderStatusPlaced is written explicitly at creation time; it shares the
	// wire value of "out for delivery" (the order is not yet dispatched).
	OrderStatusPlaced         OrderStatus = 0
	OrderStatusOutForDelivery OrderStatus = 0
	OrderStatusDelivered      OrderStatus = 1
)

// Valid reports whether s is one of the two accepted wire values.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusOutForDelivery || s == OrderStatusDelivered
}

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"index;not null" json:"user_id"`
	User           User        `gorm:"foreignKey:UserID" json:"-"`
	DeliveryCrewID *uint       `gorm:"index" json:"delivery_crew"`
	DeliveryCrew   *User       `gorm:"foreignKey:DeliveryCrewID" json:"-"`
	Status         OrderStatus `gorm:"not null;default:0" json:"status"`
	Total          float64     `gorm:"not null" json:"total"`
	Date           time.Time   `gorm:"index" json:"date"`
	Items          []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

// OrderItem is an immutable snapshot of a cart line taken when the order was
// placed. Later menu item price edits never touch these rows.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"menuitem_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	Price      float64 `gorm:"not null" json:"price"`
}
