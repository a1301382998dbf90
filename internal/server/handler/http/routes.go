package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/middleware"
)

// rate limiting mirrors the classic 100 requests per 15 minutes per IP.
const (
	rateLimit       = 100
	rateLimitWindow = 15 * time.Minute
)

// NewRouter constructs and returns an HTTP handler that serves the notehub
// API. It applies CORS, per-IP rate limiting, request logging and JSON
// content-type enforcement, and mounts the auth, note and search endpoints
// under /api.
//
// Routes:
//
//	POST   /api/auth/signup      → authHandler.Register
//	POST   /api/auth/login       → authHandler.Login
//	POST   /api/notes            → noteHandler.Create    (bearer auth)
//	GET    /api/notes            → noteHandler.List      (bearer auth)
//	GET    /api/notes/{id}       → noteHandler.Get       (bearer auth)
//	PUT    /api/notes/{id}       → noteHandler.Update    (bearer auth)
//	DELETE /api/notes/{id}       → noteHandler.Delete    (bearer auth)
//	POST   /api/notes/{id}/share → noteHandler.Share     (bearer auth)
//	GET    /api/search           → noteHandler.Search    (bearer auth)
func NewRouter(
	authHandler *AuthHandler,
	noteHandler *NoteHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(httprate.LimitByIP(rateLimit, rateLimitWindow))

	// Only allow requests with Content-Type: application/json (bodyless
	// requests pass through)
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))

			r.Post("/notes", noteHandler.Create)
			r.Get("/notes", noteHandler.List)
			r.Get("/notes/{id}", noteHandler.Get)
			r.Put("/notes/{id}", noteHandler.Update)
			r.Delete("/notes/{id}", noteHandler.Delete)
			r.Post("/notes/{id}/share", noteHandler.Share)
			r.Get("/search", noteHandler.Search)
		})
	})

	return r
}
