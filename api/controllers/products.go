package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stocklot-app/stocklot-backend/api/responses"
	"github.com/stocklot-app/stocklot-backend/api/validators"
	productsvc "github.com/stocklot-app/stocklot-backend/internal/products"
	"github.com/stocklot-app/stocklot-backend/pkg/logger"
)

// CreateProduct handles POST /api/products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusCreated, product, "product created")
	}
}

// GetProduct handles GET /api/products/{id}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// UpdateProduct handles PUT /api/products/{id}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, product, "product updated")
	}
}

// DeleteProduct handles DELETE /api/products/{id}. The deleted snapshot is
// returned; its ledger rows survive as orphans.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.DeleteProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessMessage(w, http.StatusOK, product, "product deleted")
	}
}

// ListProducts handles GET /api/products with search, category, sort and
// pagination query parameters.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		input := productsvc.ListProductsInput{
			Filters: productsvc.ProductListFilters{
				Search:   strings.TrimSpace(query.Get("search")),
				Category: strings.TrimSpace(query.Get("category")),
			},
			SortBy:     strings.TrimSpace(query.Get("sortBy")),
			SortOrder:  strings.TrimSpace(query.Get("sortOrder")),
			Pagination: validators.ParsePagination(r),
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, result.Products, result.Meta)
	}
}

// quantity and price are pointers so an absent field is a 400, not a silent
// zero. min=0 still rejects negatives when the field is present.
type createProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Quantity    *int     `json:"quantity" validate:"required,min=0"`
	Price       *float64 `json:"price" validate:"required,min=0"`
	SKU         *string  `json:"sku,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (r createProductRequest) toCreateInput() productsvc.CreateProductInput {
	return productsvc.CreateProductInput{
		Name:        r.Name,
		Quantity:    *r.Quantity,
		Price:       *r.Price,
		SKU:         r.SKU,
		Category:    r.Category,
		Description: r.Description,
	}
}

type updateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	SKU         *string  `json:"sku,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (r updateProductRequest) toUpdateInput() productsvc.UpdateProductInput {
	return productsvc.UpdateProductInput{
		Name:        r.Name,
		Quantity:    r.Quantity,
		Price:       r.Price,
		SKU:         r.SKU,
		Category:    r.Category,
		Description: r.Description,
	}
}
