package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/provenly/commerce/internal/inventory"
	"github.com/provenly/commerce/internal/redisx"
)

type AuthcodeVerifier interface {
	Lookup(ctx context.Context, authcode string) (*inventory.VerifyResult, error)
}

// ProvenanceHandler answers public authcode scans. Every scan hits the store
// so the view counter stays honest; redis keeps the last good response per
// authcode as a fallback when the store is unavailable.
type ProvenanceHandler struct {
	Verifier AuthcodeVerifier
	Redis    *redis.Client
}

func (h *ProvenanceHandler) Register(r *chi.Mux) {
	r.Get("/verify/{authcode}", h.verify)
}

func (h *ProvenanceHandler) verify(w http.ResponseWriter, r *http.Request) {
	authcode := chi.URLParam(r, "authcode")
	if authcode == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing authcode"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyVerify, authcode)
	res, err := h.Verifier.Lookup(ctx, authcode)
	if errors.Is(err, inventory.ErrAuthcodeNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "authcode not found"})
		return
	}
	if err != nil {
		if h.Redis != nil {
			if s, cerr := h.Redis.Get(ctx, key).Result(); cerr == nil && s != "" {
				writeJSON(w, http.StatusOK, json.RawMessage(s))
				return
			}
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if h.Redis != nil {
		if b, merr := json.Marshal(res); merr == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLVerify).Err()
		}
	}
	writeJSON(w, http.StatusOK, res)
}
