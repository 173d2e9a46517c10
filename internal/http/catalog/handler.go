package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kleinsmith/orthobill/internal/catalog"
)

type Handler struct {
	index *catalog.Index
}

func NewHandler(index *catalog.Index) *Handler {
	return &Handler{index: index}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/codes", h.search)
	r.Get("/codes/common", h.common)
	r.Get("/saopa", h.saopa)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.index.Search(query, limit)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) common(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(catalog.Common()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) saopa(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(catalog.CommonSAOPACodes()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
