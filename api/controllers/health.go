package controllers

import (
	"net/http"

	"github.com/stocklot-app/stocklot-backend/api/responses"
	"github.com/stocklot-app/stocklot-backend/pkg/db"
	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/logger"
	pkgredis "github.com/stocklot-app/stocklot-backend/pkg/redis"
)

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores. Redis is optional; a nil pinger
// reports "disabled" without failing readiness.
func HealthReady(database db.Pinger, cache pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}

		if err := database.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db ping"))
			return
		}
		checks["db"] = "ok"

		if cache == nil {
			checks["redis"] = "disabled"
		} else if err := cache.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
			return
		} else {
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
