package model

import "time"

// Inventory tracks the stock level for a single product. The product
// reference is unique: one inventory row per product.
type Inventory struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ProductID       uint      `json:"product_id" gorm:"uniqueIndex;not null"`
	QuantityInStock int       `json:"quantity_in_stock" gorm:"not null;default:0"`
	LastUpdated     time.Time `json:"last_updated"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName keeps the singular table name of the schema.
func (Inventory) TableName() string {
	return "inventory"
}

// LowStockItem is one row of the low-stock report: products whose stock is
// at or below their reorder level.
type LowStockItem struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
	Shortage     int    `json:"shortage"`
}
