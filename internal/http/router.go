// Package http assembles the full API surface: module routes under /api/v1,
// the admin audit trail, health, and metrics.
package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parapet/internal/audit"
	permithandler "parapet/internal/permit/handler"
	"parapet/internal/platform/metrics"
	"parapet/internal/platform/middleware"
	platformredis "parapet/internal/platform/redis"
	"parapet/internal/portfolio"
	propertyhandler "parapet/internal/property/handler"
	"parapet/internal/summary"
	"parapet/internal/tax"
	"parapet/internal/transport/http/shared"
	"parapet/internal/vendor"
	"parapet/internal/violation"
	"parapet/internal/workorder"
)

// Deps carries everything the router mounts. Nil optional members (db, redis,
// summaries) degrade the corresponding endpoints rather than panic.
type Deps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	AdminToken string

	DB    *sql.DB
	Redis *platformredis.Client

	Properties *propertyhandler.Handler
	Permits    *permithandler.Handler
	Violations *violation.Handler
	WorkOrders *workorder.Handler
	Vendors    *vendor.Handler
	Portfolios *portfolio.Handler
	Taxes      *tax.Handler
	Summaries  *summary.Handler
	Audit      *audit.Handler
}

// NewRouter wires middleware and all module routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Latency(d.Metrics))

	requireAdmin := middleware.RequireAdmin(d.AdminToken)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.ContentTypeJSON)

		d.Properties.Register(api, requireAdmin)
		d.Permits.Register(api, requireAdmin)
		d.Violations.Register(api, requireAdmin)
		d.WorkOrders.Register(api, requireAdmin)
		d.Vendors.Register(api, requireAdmin)
		d.Portfolios.Register(api, requireAdmin)
		d.Taxes.Register(api, requireAdmin)
		if d.Summaries != nil {
			d.Summaries.Register(api, requireAdmin)
		}
		d.Audit.Register(api, requireAdmin)
	})

	r.Get("/healthz", handleHealth(d))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if d.DB != nil {
			if err := d.DB.PingContext(r.Context()); err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}
		if d.Redis != nil {
			if err := d.Redis.Health(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		state := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		shared.WriteJSON(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
