package products

import (
	"time"

	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/google/uuid"
)

// ProductDTO is the product payload returned to clients. Field names are
// part of the public contract and must stay camelCase.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	SKU         *string   `json:"sku"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductListResult carries one page of products plus pagination metadata.
type ProductListResult struct {
	Products []ProductDTO
	Meta     pagination.Meta
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Quantity:    product.Quantity,
		Price:       product.Price,
		SKU:         product.SKU,
		Category:    product.Category,
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
