package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for inventory records and the guarded
// product quantity adjustments the engine relies on.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns a repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindRecordByID loads a ledger entry.
func (r *Repository) FindRecordByID(ctx context.Context, id uuid.UUID) (*models.InventoryRecord, error) {
	var record models.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord inserts a ledger entry.
func (r *Repository) CreateRecord(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// UpdateRecord persists all columns of an existing ledger entry.
func (r *Repository) UpdateRecord(ctx context.Context, record *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DeleteRecord removes a ledger entry.
func (r *Repository) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryRecord{}).Error
}

// FindProductByID loads the product a record points at.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// AdjustProductQuantity applies delta to the product's quantity in a single
// guarded UPDATE. The floor lives in the WHERE clause, so the adjustment
// either commits atomically or touches nothing; concurrent writers serialize
// on the row. Returns false when no row qualified, which means the product
// is missing or the delta would drive quantity negative.
func (r *Repository) AdjustProductQuantity(ctx context.Context, productID uuid.UUID, delta int) (bool, error) {
	if delta == 0 {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ?", productID).
			Count(&count).Error
		return count > 0, err
	}

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity + ? >= 0", productID, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type recordListQuery struct {
	ProductID  *uuid.UUID
	Type       *models.RecordType
	StartDate  *time.Time
	EndDate    *time.Time
	Pagination pagination.Params
}

type recordJoinRow struct {
	ID        uuid.UUID         `gorm:"column:id"`
	ProductID uuid.UUID         `gorm:"column:product_id"`
	Type      models.RecordType `gorm:"column:type"`
	Quantity  int               `gorm:"column:quantity"`
	Reason    string            `gorm:"column:reason"`
	Notes     string            `gorm:"column:notes"`
	Timestamp time.Time         `gorm:"column:timestamp"`
	PID       sql.NullString    `gorm:"column:p_id"`
	PName     sql.NullString    `gorm:"column:p_name"`
	PSKU      sql.NullString    `gorm:"column:p_sku"`
}

// ListRecords returns one page of ledger entries, newest first, each with a
// LEFT JOINed product projection (absent for orphaned rows), plus the
// unpaginated match count.
func (r *Repository) ListRecords(ctx context.Context, query recordListQuery) ([]recordJoinRow, int64, error) {
	params := query.Pagination.Normalize()

	base := r.db.WithContext(ctx).Table("inventory_records r")
	base = applyRecordFilters(base, query)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	qb := r.db.WithContext(ctx).
		Table("inventory_records r").
		Select(`r.id, r.product_id, r.type, r.quantity, r.reason, r.notes, r.timestamp,
			p.id AS p_id, p.name AS p_name, p.sku AS p_sku`).
		Joins("LEFT JOIN products p ON p.id = r.product_id")
	qb = applyRecordFilters(qb, query)

	var rows []recordJoinRow
	err := qb.
		Order("r.timestamp DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Scan(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyRecordFilters(qb *gorm.DB, query recordListQuery) *gorm.DB {
	if query.ProductID != nil {
		qb = qb.Where("r.product_id = ?", *query.ProductID)
	}
	if query.Type != nil {
		qb = qb.Where("r.type = ?", *query.Type)
	}
	if query.StartDate != nil {
		qb = qb.Where("r.timestamp >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		qb = qb.Where("r.timestamp <= ?", *query.EndDate)
	}
	return qb
}

// ListHistory returns one page of a single product's ledger, newest first,
// plus the unpaginated count.
func (r *Repository) ListHistory(ctx context.Context, productID uuid.UUID, params pagination.Params) ([]models.InventoryRecord, int64, error) {
	normalized := params.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.InventoryRecord{}).
		Where("product_id = ?", productID)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InventoryRecord
	err := qb.
		Order("timestamp DESC").
		Limit(normalized.Limit).
		Offset(normalized.Offset()).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
