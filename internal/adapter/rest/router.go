package rest

import (
	"github.com/go-chi/chi/v5"

	"github.com/renthaven/listing-service/internal/adapter/rest/middleware"
	"github.com/renthaven/listing-service/internal/platform/logger"
)

// NewRouter wires the public read routes and the JWT-protected submission
// route. Browsing listings needs no account; publishing one does.
func NewRouter(h *Handler, jwtSecret string, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Tracing("listing-service"))
	r.Use(middleware.RequestLogger(log))

	r.Get("/api/listings", h.HandleListListings)
	r.Get("/api/listings/{id}", h.HandleGetListing)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.JWTAuth(jwtSecret, log))
		pr.Post("/api/listings", h.HandleCreateListing)
	})

	return r
}
