package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/othala/internal/homeservice"
	"github.com/starford/othala/internal/sse"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, provides the SSE feed at GET /events inside the auth
// group and receives home change events from the handlers.
func NewRouter(svc *homeservice.Service, authEnabled bool, token string, broker *sse.Broker, exportName string) chi.Router {
	h := NewHandler(svc, broker, exportName)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Rubric (read-only; loaded once at startup).
	r.Get("/rubric", h.Rubric)

	// Homes CRUD. The static summary route is registered alongside the
	// {id} routes; chi matches it before the wildcard.
	r.Get("/homes", h.ListHomes)
	r.Post("/homes", h.CreateHome)
	r.Get("/homes/summary", h.Summary)
	r.Get("/homes/{id}", h.GetHome)
	r.Put("/homes/{id}", h.UpdateHome)
	r.Delete("/homes/{id}", h.DeleteHome)

	// Photos.
	r.Post("/homes/{id}/photos", h.UploadPhoto)
	r.Get("/homes/{id}/photos/{idx}", h.ServePhoto)

	// CSV export.
	r.Get("/export", h.Export)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", http.HandlerFunc(broker.ServeHTTP))
	}

	return r
}
