package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/time/rate"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/metrics"
	"creativetech.dev/internal/middleware"
	"creativetech.dev/internal/render"
	"creativetech.dev/internal/services"
)

// Deps are the collaborators the routes are built from
type Deps struct {
	Store     *catalog.Store
	Renderer  *render.Renderer
	Embeds    *services.EmbedService
	Logger    logger.Logger
	Metrics   *metrics.Metrics
	StaticDir string

	// EmbedLimiter throttles POST /api/embeds. Nil means unlimited.
	EmbedLimiter *rate.Limiter
	// Sessions scopes embed viewers to visitors. Nil uses a store with a per-process key.
	Sessions     sessions.Store
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.HTMX)
	r.Use(middleware.Logger(d.Logger))

	sessionStore := d.Sessions
	if sessionStore == nil {
		sessionStore = middleware.NewSessionStore("")
	}

	// Initialize services
	projectService := services.NewProjectService(d.Store)
	galleryService := services.NewGalleryService(d.Store, d.Metrics)
	embedService := d.Embeds
	if embedService == nil {
		embedService = services.NewEmbedService(d.Store, d.Logger, d.Metrics)
	}

	// Initialize handlers
	galleryHandler := NewGalleryHandler(galleryService, embedService, d.Renderer, d.Logger)
	projectHandler := NewProjectHandler(projectService, galleryService)
	embedHandler := NewEmbedHandler(embedService, d.Renderer, d.Logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Get("/categories", projectHandler.ListCategories)
		r.Get("/tags", projectHandler.ListTags)
		r.Get("/tags/{tag}/projects", projectHandler.ListTagProjects)
		r.Get("/gallery", galleryHandler.GalleryJSON)

		// Embed viewer endpoints, scoped to the visitor's session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(sessionStore, d.Logger))
			r.With(middleware.RateLimit(d.EmbedLimiter, d.Logger)).Post("/embeds", embedHandler.Open)
			r.Route("/embeds/{id}", func(r chi.Router) {
				r.Get("/", embedHandler.Get)
				r.Delete("/", embedHandler.Close)
				r.Post("/close", embedHandler.Close)
				r.Post("/ping", embedHandler.Get)
				r.Post("/load", embedHandler.Loaded)
				r.Post("/error", embedHandler.Failed)
				r.Post("/retry", embedHandler.Retry)
				r.Post("/escape", embedHandler.Escape)
				r.Put("/url", embedHandler.SetURL)
			})
		})

		// Health check
		r.Get("/health", healthz)
	})

	r.Get("/healthz", healthz)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	// Static files
	if d.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(d.StaticDir))
		r.Handle("/static/*", http.StripPrefix("/static", fileServer))
	}

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessionStore, d.Logger))
		r.Get("/", galleryHandler.Index)
		r.Get("/projects", galleryHandler.Fragment)
	})

	return r
}

func healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
