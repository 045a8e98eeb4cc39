package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventorysvc "github.com/stocklot-app/stocklot-backend/internal/inventory"
	productsvc "github.com/stocklot-app/stocklot-backend/internal/products"
	"github.com/stocklot-app/stocklot-backend/pkg/db"
	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
)

type testEnv struct {
	conn      *gorm.DB
	router    chi.Router
	products  productsvc.Service
	inventory inventorysvc.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:controllers_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.InventoryRecord{}))

	client := db.NewWithConn(conn)

	products, err := productsvc.NewService(productsvc.NewRepository(conn), client)
	require.NoError(t, err)
	inventory, err := inventorysvc.NewService(inventorysvc.NewRepository(conn), client)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", ListProducts(products, nil))
		r.Post("/", CreateProduct(products, nil))
		r.Get("/{id}", GetProduct(products, nil))
		r.Put("/{id}", UpdateProduct(products, nil))
		r.Delete("/{id}", DeleteProduct(products, nil))
	})
	r.Route("/api/inventory", func(r chi.Router) {
		r.Post("/in", StockIn(inventory, nil))
		r.Post("/out", StockOut(inventory, nil))
		r.Get("/history/{productId}", ListHistory(inventory, nil))
		r.Get("/records", ListRecords(inventory, nil))
		r.Put("/records/{id}", UpdateRecord(inventory, nil))
		r.Delete("/records/{id}", DeleteRecord(inventory, nil))
	})

	return &testEnv{conn: conn, router: r, products: products, inventory: inventory}
}

type envelope struct {
	Success    bool             `json:"success"`
	Data       json.RawMessage  `json:"data"`
	Message    string           `json:"message"`
	Error      string           `json:"error"`
	Pagination *pagination.Meta `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name string, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Quantity: quantity, Category: "uncategorized"}
	require.NoError(t, conn.Create(product).Error)
	return product
}
