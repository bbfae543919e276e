package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entry. Every product references one category and
// one supplier, and has exactly one inventory row created alongside it.
type Product struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(200);not null"`
	Code         string          `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	CategoryID   uint            `json:"category_id" gorm:"not null"`
	SupplierID   uint            `json:"supplier_id" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:numeric(10,2);not null"`
	ReorderLevel int             `json:"reorder_level" gorm:"default:10"`
	Description  string          `json:"description" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Supplier *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
}
