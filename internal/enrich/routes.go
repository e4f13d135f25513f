package enrich

import (
	"net/http"

	"github.com/OWDB/OWDB-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handlers, apiKeyHash string) http.Handler {
	r := chi.NewRouter()

	r.Get("/batches", h.ListBatches)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyMiddleware(apiKeyHash))
		r.Post("/run", h.Run)
	})

	return r
}
