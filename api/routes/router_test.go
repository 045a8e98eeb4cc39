package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	inventorysvc "github.com/stocklot-app/stocklot-backend/internal/inventory"
	productsvc "github.com/stocklot-app/stocklot-backend/internal/products"
	"github.com/stocklot-app/stocklot-backend/pkg/config"
	"github.com/stocklot-app/stocklot-backend/pkg/db"
	"github.com/stocklot-app/stocklot-backend/pkg/db/models"
	"github.com/stocklot-app/stocklot-backend/pkg/metrics"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.InventoryRecord{}))

	client := db.NewWithConn(conn)
	products, err := productsvc.NewService(productsvc.NewRepository(conn), client)
	require.NoError(t, err)
	inventory, err := inventorysvc.NewService(inventorysvc.NewRepository(conn), client)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	return NewRouter(Deps{
		Config:      &config.Config{},
		DB:          client,
		Metrics:     metrics.NewHTTPMetrics(registry),
		MetricsHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Products:    products,
		Inventory:   inventory,
	})
}

func TestRouterHealthAndNotFound(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, 200, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, 404, rec.Code)

	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "route not found", env["message"])
}

func TestRouterEndToEndStockFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/products",
		strings.NewReader(`{"name":"Widget","quantity":10,"price":2.5}`)))
	require.Equal(t, 201, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/inventory/out",
		strings.NewReader(`{"productId":"`+created.Data.ID+`","quantity":4}`)))
	require.Equal(t, 201, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/products/"+created.Data.ID, nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":6`)

	// Metrics endpoint reflects the traffic above.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
