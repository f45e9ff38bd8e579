package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
)

type Handler struct {
	Svc *Service
}

// List returns active products, optionally filtered with ?type=LVL.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Products.ListActive(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		log.Printf("ListActive error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

// Get returns one product by code.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	p, err := h.Svc.Products.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("GetByCode error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

type recommendRequest struct {
	calc.Input
	ProductType string `json:"product_type,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// Recommend returns catalog products that pass the posted member check.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	recs, err := h.Svc.Recommend(r.Context(), req.Input, req.ProductType, req.Limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"count": len(recs), "recommendations": recs})
}
