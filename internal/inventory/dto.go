package inventory

import (
	"time"

	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/google/uuid"
)

// RecordDTO is the ledger entry payload returned to clients. Field names
// are part of the public contract and must stay camelCase.
type RecordDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductRefDTO is the slim product projection attached to record listings.
type ProductRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	SKU  *string   `json:"sku"`
}

// RecordWithProductDTO joins a record with its product. Product is null for
// records whose product has been deleted.
type RecordWithProductDTO struct {
	RecordDTO
	Product *ProductRefDTO `json:"product"`
}

// RecordListResult carries one page of the full ledger listing.
type RecordListResult struct {
	Records []RecordWithProductDTO
	Meta    pagination.Meta
}

// HistoryResult carries one page of a single product's ledger.
type HistoryResult struct {
	Records []RecordDTO
	Meta    pagination.Meta
}

// NewRecordDTO builds a DTO from the persisted model.
func NewRecordDTO(record *models.InventoryRecord) *RecordDTO {
	return &RecordDTO{
		ID:        record.ID,
		ProductID: record.ProductID,
		Type:      string(record.Type),
		Quantity:  record.Quantity,
		Reason:    record.Reason,
		Notes:     record.Notes,
		Timestamp: record.Timestamp,
	}
}
