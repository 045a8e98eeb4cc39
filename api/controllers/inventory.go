package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stocklot-app/stocklot-backend/api/responses"
	"github.com/stocklot-app/stocklot-backend/api/validators"
	inventorysvc "github.com/stocklot-app/stocklot-backend/internal/inventory"
	"github.com/stocklot-app/stocklot-backend/pkg/logger"
)

// StockIn handles POST /api/inventory/in.
func StockIn(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return stockMutation(svc.StockIn, logg, "stock added")
}

// StockOut handles POST /api/inventory/out.
func StockOut(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return stockMutation(svc.StockOut, logg, "stock removed")
}

type mutationFunc func(ctx context.Context, input inventorysvc.StockMutationInput) (*inventorysvc.RecordDTO, error)

func stockMutation(apply mutationFunc, logg *logger.Logger, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload stockMutationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUID(payload.ProductID, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID.String())
		}

		record, err := apply(ctx, inventorysvc.StockMutationInput{
			ProductID: productID,
			Quantity:  payload.Quantity,
			Reason:    payload.Reason,
			Notes:     payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusCreated, record, message)
	}
}

// ListHistory handles GET /api/inventory/history/{productId}.
func ListHistory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListHistory(r.Context(), productID, validators.ParsePagination(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Records, result.Meta)
	}
}

// ListRecords handles GET /api/inventory/records with type and date-range
// filters. The endDate bound is inclusive for its whole day.
func ListRecords(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		startDate, err := validators.ParseQueryDate(r, "startDate", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		endDate, err := validators.ParseQueryDate(r, "endDate", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListRecords(r.Context(), inventorysvc.ListRecordsInput{
			Type:       strings.TrimSpace(r.URL.Query().Get("type")),
			StartDate:  startDate,
			EndDate:    endDate,
			Pagination: validators.ParsePagination(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Records, result.Meta)
	}
}

// UpdateRecord handles PUT /api/inventory/records/{id}. Type and product are
// immutable; only quantity, reason and notes can change.
func UpdateRecord(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateRecordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithRecordID(ctx, id.String())
		}

		record, err := svc.UpdateRecord(ctx, id, inventorysvc.UpdateRecordInput{
			Quantity: payload.Quantity,
			Reason:   payload.Reason,
			Notes:    payload.Notes,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, record, "record updated")
	}
}

// DeleteRecord handles DELETE /api/inventory/records/{id}, reversing the
// record's effect on the product quantity.
func DeleteRecord(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithRecordID(ctx, id.String())
		}

		record, err := svc.DeleteRecord(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, record, "record deleted")
	}
}

type stockMutationRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type updateRecordRequest struct {
	Quantity *int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Reason   *string `json:"reason,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
