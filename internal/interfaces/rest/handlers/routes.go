package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	RequestTimeout time.Duration
	MetricsPath    string
	Metrics        http.Handler
	Docs           http.HandlerFunc
	Health         Pinger
	// Validator checks requests against the API document; nil disables it.
	Validator func(http.Handler) http.Handler
}

func (h *Handlers) Router(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recovery(h.logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", h.health(cfg.Health))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics)
	}
	if cfg.Docs != nil {
		r.Get("/docs/openapi.json", cfg.Docs)
	}

	r.Group(func(r chi.Router) {
		if cfg.Validator != nil {
			r.Use(cfg.Validator)
		}

		r.Route("/vip-payment", func(r chi.Router) {
			r.Post("/create", h.CreatePayment)
			r.Post("/complete", h.CompletePayment)
			r.Get("/price", h.GetPrice)
			r.Get("/history", h.ListPayments)
			r.Get("/{paymentId}", h.GetPayment)
		})

		r.Route("/vip", func(r chi.Router) {
			r.Post("/activate", h.ActivateVIP)
			r.Post("/deactivate", h.DeactivateVIP)
			r.Get("/status/{itemId}", h.VIPStatus)
		})
	})

	return r
}

func (h *Handlers) health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				h.logger.ErrorContext(r.Context(), "health check failed", "error", err)
				h.writeStatus(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		h.writeStatus(w, http.StatusOK, "ok")
	}
}

func (h *Handlers) writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"status":"` + status + `"}`))
}
