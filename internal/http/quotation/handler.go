package quotation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kleinsmith/orthobill/internal/document"
	"github.com/kleinsmith/orthobill/internal/quotation"
)

type Handler struct {
	svc *quotation.Service
}

func NewHandler(svc *quotation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/submit", h.transition((*quotation.Service).Submit))
	r.Post("/{id}/approve", h.transition((*quotation.Service).Approve))
	r.Post("/{id}/return", h.transition((*quotation.Service).ReturnToDraft))
	r.Post("/{id}/convert", h.transition((*quotation.Service).Convert))
	r.Get("/{id}/document", h.document)
}

type lineItemRequest struct {
	ICD10Code    string          `json:"icd10Code"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	NAPPICode    string          `json:"nappiCode"`
	SAOPACode    string          `json:"saopaCode"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

func toLineItemParams(items []lineItemRequest) []quotation.LineItemParams {
	params := make([]quotation.LineItemParams, len(items))
	for i, item := range items {
		params[i] = quotation.LineItemParams{
			ICD10Code:    item.ICD10Code,
			Description:  item.Description,
			Quantity:     item.Quantity,
			NAPPICode:    item.NAPPICode,
			SAOPACode:    item.SAOPACode,
			PricePerUnit: item.PricePerUnit,
		}
	}

	return params
}

type createQuotationRequest struct {
	Date         time.Time         `json:"date"`
	ClaimantName string            `json:"claimantName"`
	Title        string            `json:"title"`
	LineItems    []lineItemRequest `json:"lineItems"`
	VATEnabled   bool              `json:"vatEnabled"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, err := h.svc.Create(r.Context(), quotation.CreateParams{
		Date:         req.Date,
		ClaimantName: req.ClaimantName,
		Title:        req.Title,
		LineItems:    toLineItemParams(req.LineItems),
		VATEnabled:   req.VATEnabled,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(q)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := quotation.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		st := quotation.Status(s)
		filter.Status = &st
	}

	qs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(qs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, quotation.ErrNotFound) {
			http.Error(w, "quotation not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(q)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateQuotationRequest struct {
	Date         *time.Time        `json:"date,omitempty"`
	ClaimantName *string           `json:"claimantName,omitempty"`
	Title        *string           `json:"title,omitempty"`
	LineItems    []lineItemRequest `json:"lineItems,omitempty"`
	VATEnabled   *bool             `json:"vatEnabled,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := quotation.UpdateParams{
		Date:         req.Date,
		ClaimantName: req.ClaimantName,
		Title:        req.Title,
		VATEnabled:   req.VATEnabled,
	}
	if req.LineItems != nil {
		params.LineItems = toLineItemParams(req.LineItems)
	}

	q, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, quotation.ErrNotFound):
			http.Error(w, "quotation not found", http.StatusNotFound)
		case errors.Is(err, quotation.ErrLocked):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, quotation.ErrVersionConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(q)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, quotation.ErrNotFound) {
			http.Error(w, "quotation not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// transition adapts one lifecycle operation into a handler. All four
// share the same shape: parse id, run, map sentinel errors.
func (h *Handler) transition(op func(*quotation.Service, context.Context, uuid.UUID) (*quotation.Quotation, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		q, err := op(h.svc, r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, quotation.ErrNotFound):
				http.Error(w, "quotation not found", http.StatusNotFound)
			case errors.Is(err, quotation.ErrInvalidTransition):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, quotation.ErrVersionConflict):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}

			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(toResponse(q)); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, quotation.ErrNotFound) {
			http.Error(w, "quotation not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := document.Render(w, document.FromQuotation(q)); err != nil {
		slog.Error("failed to render document", "error", err, "link_no", q.LinkNo)
	}
}
