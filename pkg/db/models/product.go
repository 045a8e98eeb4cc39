package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item carrying its current on-hand quantity. The
// quantity column is the single source of truth the inventory ledger is
// reconciled against.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Quantity    int       `gorm:"column:quantity;not null;default:0;check:quantity >= 0"`
	Price       float64   `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	SKU         *string   `gorm:"column:sku;uniqueIndex:idx_products_sku"`
	Category    string    `gorm:"column:category;not null;default:uncategorized"`
	Description string    `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
