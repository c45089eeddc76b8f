package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/provenly/commerce/internal/batches"
)

type BatchCreator interface {
	Create(ctx context.Context, in batches.CreateInput) (*batches.CreateResult, error)
}

// BatchesHandler exposes admin stock intake. The gateway in front restricts
// /admin routes to operators.
type BatchesHandler struct {
	Batches BatchCreator
}

func (h *BatchesHandler) Register(r *chi.Mux) {
	r.Post("/admin/batches", h.createBatch)
}

func (h *BatchesHandler) createBatch(w http.ResponseWriter, r *http.Request) {
	var in batches.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := h.Batches.Create(ctx, in)
	if err != nil {
		if errors.Is(err, batches.ErrProductNotFound) || errors.Is(err, batches.ErrInvalidUnits) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
