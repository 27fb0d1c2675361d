// Package httptransport assembles the HTTP surface. It delegates to the
// ledger handler without embedding business logic so transport concerns stay
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/handler"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/middleware"
	"github.com/fourtytwo42/healthChains-sub004/internal/transport/http/json"
)

// NewRouter wires the middleware stack, the operational endpoints, and the
// authenticated ledger API.
func NewRouter(ledger *handler.Handler, verifier middleware.Verifier, logger *slog.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		json.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Every ledger operation requires an authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCaller(verifier, logger))
		ledger.Register(r)
	})

	return r
}
