package models

import "time"

// CartItem is one pre-order line for a user. One row per (user, menuitem);
// UnitPrice is snapshotted from the menu item when the row is created.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index:idx_cart_user_menuitem,unique;not null" json:"user_id"`
	MenuItemID uint      `gorm:"index:idx_cart_user_menuitem,unique;not null" json:"menuitem_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID" json:"menuitem"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	Price      float64   `gorm:"not null" json:"price"`
	AddedAt    time.Time `json:"added_at"`
}
