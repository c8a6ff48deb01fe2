package models

type MenuItem struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string   `gorm:"not null" json:"title"`
	Price      float64  `gorm:"not null" json:"price"`
	Featured   bool     `json:"featured"`
	Inventory  int      `json:"inventory"`
	CategoryID uint     `gorm:"index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`
}
