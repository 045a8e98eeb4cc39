package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stocklot-app/stocklot-backend/pkg/db"
	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultStockInReason  = "stock-in"
	defaultStockOutReason = "stock-out"
)

// Service exposes the stock mutation engine and the ledger read paths.
// Every mutation adjusts the product quantity and writes or rewrites ledger
// rows inside one transaction, so the ledger invariant holds after any
// committed call: initial quantity plus the sum of surviving record deltas
// equals the current quantity.
type Service interface {
	StockIn(ctx context.Context, input StockMutationInput) (*RecordDTO, error)
	StockOut(ctx context.Context, input StockMutationInput) (*RecordDTO, error)
	UpdateRecord(ctx context.Context, recordID uuid.UUID, input UpdateRecordInput) (*RecordDTO, error)
	DeleteRecord(ctx context.Context, recordID uuid.UUID) (*RecordDTO, error)
	ListRecords(ctx context.Context, input ListRecordsInput) (*RecordListResult, error)
	ListHistory(ctx context.Context, productID uuid.UUID, params pagination.Params) (*HistoryResult, error)
}

// StockMutationInput is the validated payload for stock-in/stock-out.
type StockMutationInput struct {
	ProductID uuid.UUID
	Quantity  int
	Reason    *string
	Notes     *string
}

// UpdateRecordInput holds optional mutation values for an existing record.
// Type and product are immutable and have no input fields.
type UpdateRecordInput struct {
	Quantity *int
	Reason   *string
	Notes    *string
}

// ListRecordsInput captures the ledger listing filters. A type value other
// than in/out is ignored rather than rejected. The date range is inclusive
// on both ends.
type ListRecordsInput struct {
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
	Pagination pagination.Params
}

// service implements the inventory service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// StockIn increases the product quantity and appends an "in" record.
func (s *service) StockIn(ctx context.Context, input StockMutationInput) (*RecordDTO, error) {
	return s.applyMutation(ctx, input, models.RecordTypeIn)
}

// StockOut decreases the product quantity and appends an "out" record. The
// product is left untouched when it holds less than the requested quantity.
func (s *service) StockOut(ctx context.Context, input StockMutationInput) (*RecordDTO, error) {
	return s.applyMutation(ctx, input, models.RecordTypeOut)
}

func (s *service) applyMutation(ctx context.Context, input StockMutationInput, recordType models.RecordType) (*RecordDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	delta := input.Quantity
	reason := defaultStockInReason
	if recordType == models.RecordTypeOut {
		delta = -input.Quantity
		reason = defaultStockOutReason
	}
	if input.Reason != nil && strings.TrimSpace(*input.Reason) != "" {
		reason = strings.TrimSpace(*input.Reason)
	}

	record := &models.InventoryRecord{
		ProductID: input.ProductID,
		Type:      recordType,
		Quantity:  input.Quantity,
		Reason:    reason,
		Notes:     trimOrEmpty(input.Notes),
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		adjusted, err := txRepo.AdjustProductQuantity(ctx, input.ProductID, delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust quantity")
		}
		if !adjusted {
			return s.classifyRejection(ctx, txRepo, input.ProductID, input.Quantity)
		}

		if err := txRepo.CreateRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert record")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return NewRecordDTO(record), nil
}

// UpdateRecord changes a record's quantity (re-applying the difference to
// the product), reason, or notes.
func (s *service) UpdateRecord(ctx context.Context, recordID uuid.UUID, input UpdateRecordInput) (*RecordDTO, error) {
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var record *models.InventoryRecord
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		loaded, err := s.loadRecord(ctx, txRepo, recordID)
		if err != nil {
			return err
		}
		record = loaded

		// Orphaned records (product deleted) stay readable but immutable,
		// even for label-only edits.
		if _, err := txRepo.FindProductByID(ctx, record.ProductID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		if input.Quantity != nil && *input.Quantity != record.Quantity {
			// The quantity delta flips sign for "out" records: raising an
			// out record removes more stock.
			delta := *input.Quantity - record.Quantity
			if record.Type == models.RecordTypeOut {
				delta = -delta
			}

			adjusted, err := txRepo.AdjustProductQuantity(ctx, record.ProductID, delta)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust quantity")
			}
			if !adjusted {
				return s.classifyRejection(ctx, txRepo, record.ProductID, *input.Quantity)
			}
			record.Quantity = *input.Quantity
		}

		if input.Reason != nil {
			record.Reason = strings.TrimSpace(*input.Reason)
		}
		if input.Notes != nil {
			record.Notes = strings.TrimSpace(*input.Notes)
		}

		if err := txRepo.UpdateRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update record")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return NewRecordDTO(record), nil
}

// DeleteRecord removes a record and reverses its effect on the product.
// Deleting an "in" record whose reversal would drive the quantity negative
// fails and leaves both rows untouched.
func (s *service) DeleteRecord(ctx context.Context, recordID uuid.UUID) (*RecordDTO, error) {
	var record *models.InventoryRecord
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		loaded, err := s.loadRecord(ctx, txRepo, recordID)
		if err != nil {
			return err
		}
		record = loaded

		delta := record.Quantity
		if record.Type == models.RecordTypeIn {
			delta = -record.Quantity
		}

		adjusted, err := txRepo.AdjustProductQuantity(ctx, record.ProductID, delta)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: adjust quantity")
		}
		if !adjusted {
			if _, err := txRepo.FindProductByID(ctx, record.ProductID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				"deleting this stock-in would drive the product quantity negative")
		}

		if err := txRepo.DeleteRecord(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete record")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return NewRecordDTO(record), nil
}

// ListRecords returns one page of the full ledger with product projections.
func (s *service) ListRecords(ctx context.Context, input ListRecordsInput) (*RecordListResult, error) {
	query := recordListQuery{Pagination: input.Pagination}

	recordType := models.RecordType(strings.TrimSpace(input.Type))
	if recordType.Valid() {
		query.Type = &recordType
	}
	query.StartDate = input.StartDate
	query.EndDate = input.EndDate

	rows, total, err := s.repo.ListRecords(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list records")
	}

	dtos := make([]RecordWithProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, newRecordWithProductDTO(&rows[i]))
	}
	return &RecordListResult{
		Records: dtos,
		Meta:    pagination.NewMeta(total, input.Pagination),
	}, nil
}

// ListHistory returns one page of a single product's ledger.
func (s *service) ListHistory(ctx context.Context, productID uuid.UUID, params pagination.Params) (*HistoryResult, error) {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	rows, total, err := s.repo.ListHistory(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list history")
	}

	dtos := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewRecordDTO(&rows[i]))
	}
	return &HistoryResult{
		Records: dtos,
		Meta:    pagination.NewMeta(total, params),
	}, nil
}

// classifyRejection distinguishes a missing product from an insufficient
// balance after a guarded adjustment matched no row.
func (s *service) classifyRejection(ctx context.Context, txRepo *Repository, productID uuid.UUID, requested int) error {
	product, err := txRepo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for this operation").
		WithDetails(map[string]int{
			"available": product.Quantity,
			"requested": requested,
		})
}

func (s *service) loadRecord(ctx context.Context, txRepo *Repository, recordID uuid.UUID) (*models.InventoryRecord, error) {
	record, err := txRepo.FindRecordByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load record")
	}
	return record, nil
}

func newRecordWithProductDTO(row *recordJoinRow) RecordWithProductDTO {
	dto := RecordWithProductDTO{
		RecordDTO: RecordDTO{
			ID:        row.ID,
			ProductID: row.ProductID,
			Type:      string(row.Type),
			Quantity:  row.Quantity,
			Reason:    row.Reason,
			Notes:     row.Notes,
			Timestamp: row.Timestamp,
		},
	}
	if row.PID.Valid {
		ref := &ProductRefDTO{Name: row.PName.String}
		if id, err := uuid.Parse(row.PID.String); err == nil {
			ref.ID = id
		}
		if row.PSKU.Valid {
			sku := row.PSKU.String
			ref.SKU = &sku
		}
		dto.Product = ref
	}
	return dto
}

func trimOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
