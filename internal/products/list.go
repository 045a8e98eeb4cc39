package products

import (
	"strings"

	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the catalog listing.
type ProductListFilters struct {
	Search   string
	Category string
}

// ListProductsInput captures pagination, filtering, and sorting for the listing.
type ListProductsInput struct {
	Filters    ProductListFilters
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

// sortColumns whitelists the client-facing sort keys against real columns.
var sortColumns = map[string]string{
	"name":      "name",
	"quantity":  "quantity",
	"price":     "price",
	"sku":       "sku",
	"category":  "category",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const defaultSortColumn = "created_at"

// resolveSort maps the requested sort key/order onto a column and direction.
// Unknown keys fall back to createdAt; the legacy numeric order values
// ("1"/"-1") are accepted alongside asc/desc, defaulting to descending.
func resolveSort(sortBy, sortOrder string) (string, bool) {
	column, ok := sortColumns[strings.TrimSpace(sortBy)]
	if !ok {
		column = defaultSortColumn
	}

	switch strings.ToLower(strings.TrimSpace(sortOrder)) {
	case "asc", "1":
		return column, false
	default:
		return column, true
	}
}
