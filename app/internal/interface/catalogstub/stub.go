// Package catalogstub serves the catalog and stock endpoints from a JSON
// fixture for local development.
package catalogstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

// DB is the fixture layout: {"products": [...], "stock": [...]}.
type DB struct {
	Products []domproduct.Product `json:"products"`
	Stock    []domproduct.Stock   `json:"stock"`
}

func LoadDB(path string) (*DB, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &db, nil
}

type Handler struct {
	products []domproduct.Product
	byID     map[int64]domproduct.Product
	stock    map[int64]domproduct.Stock
}

func New(db *DB) *Handler {
	h := &Handler{
		products: db.Products,
		byID:     make(map[int64]domproduct.Product, len(db.Products)),
		stock:    make(map[int64]domproduct.Stock, len(db.Stock)),
	}
	for _, p := range db.Products {
		h.byID[p.ID] = p
	}
	for _, s := range db.Stock {
		h.stock[s.ProductID] = s
	}
	return h
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/products", h.handleListProducts)
	r.Get("/products/{id}", h.handleGetProduct)
	r.Get("/stock/{id}", h.handleGetStock)
	return r
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.products
	if products == nil {
		products = []domproduct.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, ok := h.byID[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) handleGetStock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s, ok := h.stock[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
