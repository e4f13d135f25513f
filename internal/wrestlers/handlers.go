package wrestlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Finder is the read side of the store used by the HTTP handlers.
type Finder interface {
	FindBySlug(ctx context.Context, slug string) (*Wrestler, error)
	Count(ctx context.Context) (int64, error)
}

type Handlers struct {
	store Finder
}

func NewHandlers(store Finder) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	wrestler, err := h.store.FindBySlug(r.Context(), slug)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "Wrestler not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, wrestler)
}

func (h *Handlers) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context())
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]int64{"count": n})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
