package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stocklot-app/stocklot-backend/api/controllers"
	"github.com/stocklot-app/stocklot-backend/api/middleware"
	"github.com/stocklot-app/stocklot-backend/api/responses"
	inventorysvc "github.com/stocklot-app/stocklot-backend/internal/inventory"
	productsvc "github.com/stocklot-app/stocklot-backend/internal/products"
	"github.com/stocklot-app/stocklot-backend/pkg/config"
	"github.com/stocklot-app/stocklot-backend/pkg/db"
	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/logger"
	"github.com/stocklot-app/stocklot-backend/pkg/metrics"
	pkgredis "github.com/stocklot-app/stocklot-backend/pkg/redis"
)

// Deps carries everything the router wires together. RedisClient may be nil;
// idempotency and the redis readiness check are skipped without it.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	RedisClient *pkgredis.Client
	Metrics     *metrics.HTTPMetrics
	MetricsHTTP http.Handler
	Products    productsvc.Service
	Inventory   inventorysvc.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(deps.Config.CORS),
	)

	var idempotencyStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if deps.RedisClient != nil {
		idempotencyStore = deps.RedisClient
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, redisPinger, deps.Logger))
	})

	if deps.MetricsHTTP != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHTTP)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, deps.Config.Idempotency.TTL, deps.Logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.Products, deps.Logger))
			r.Get("/{id}", controllers.GetProduct(deps.Products, deps.Logger))
			r.Put("/{id}", controllers.UpdateProduct(deps.Products, deps.Logger))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Products, deps.Logger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/in", controllers.StockIn(deps.Inventory, deps.Logger))
			r.Post("/out", controllers.StockOut(deps.Inventory, deps.Logger))
			r.Get("/history/{productId}", controllers.ListHistory(deps.Inventory, deps.Logger))
			r.Get("/records", controllers.ListRecords(deps.Inventory, deps.Logger))
			r.Put("/records/{id}", controllers.UpdateRecord(deps.Inventory, deps.Logger))
			r.Delete("/records/{id}", controllers.DeleteRecord(deps.Inventory, deps.Logger))
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), deps.Logger, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	return r
}
