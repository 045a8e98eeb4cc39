package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordType is the direction of a stock movement.
type RecordType string

const (
	RecordTypeIn  RecordType = "in"
	RecordTypeOut RecordType = "out"
)

// Valid reports whether the value is one of the two movement directions.
func (t RecordType) Valid() bool {
	return t == RecordTypeIn || t == RecordTypeOut
}

// InventoryRecord is one immutable ledger entry for a product. ProductID
// deliberately carries no foreign key: deleting a product orphans its
// history rows, and the records listing keeps rendering them.
type InventoryRecord struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null;index"`
	Type      RecordType `gorm:"column:type;not null"`
	Quantity  int        `gorm:"column:quantity;not null;check:quantity >= 1"`
	Reason    string     `gorm:"column:reason;not null;default:''"`
	Notes     string     `gorm:"column:notes;not null;default:''"`
	Timestamp time.Time  `gorm:"column:timestamp;autoCreateTime;index:idx_inventory_records_timestamp,sort:desc"`
}

func (r *InventoryRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
