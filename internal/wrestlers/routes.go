package wrestlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(store Finder) http.Handler {
	r := chi.NewRouter()
	h := NewHandlers(store)

	r.Get("/count", h.Count)
	r.Get("/{slug}", h.GetBySlug)

	return r
}
