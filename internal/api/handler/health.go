package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/shopchat/internal/api/response"
	"github.com/Rrens/shopchat/internal/quote"
)

// Pinger is anything whose connectivity can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including store connectivity.
// Nil pingers are skipped.
func ReadyCheck(pingers map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				response.Error(w, http.StatusServiceUnavailable, name+" not ready")
				return
			}
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

// QuoteCategories returns the quote table
func QuoteCategories(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]any{
		"categories": quote.Categories(),
		"fallback":   quote.Fallback,
	})
}
