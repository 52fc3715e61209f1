// Package plan exposes the planning engine over HTTP.
package plan

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tanklogix/loadplan/core/catalog"
	"github.com/tanklogix/loadplan/core/model"
	coreplan "github.com/tanklogix/loadplan/core/plan"
)

// Service computes a plan from a wire request. Implemented by the app
// service.
type Service interface {
	PlanFromRequest(ctx context.Context, req coreplan.Request, source string) (model.PlanResult, error)
}

// NewPlanHandler returns an HTTP handler computing plans via POST /api/plan.
func NewPlanHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req coreplan.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := svc.PlanFromRequest(r.Context(), req, "http")
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewTrailersHandler lists the trailer catalog via GET /api/catalog/trailers.
func NewTrailersHandler(store *catalog.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Trailers()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// NewProductsHandler lists the product catalog via GET /api/catalog/products.
func NewProductsHandler(store *catalog.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Products()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
