package handlers

import (
	"net/http"

	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/middleware"
	"creativetech.dev/internal/render"
	"creativetech.dev/internal/services"
)

// GalleryHandler renders the gallery page
type GalleryHandler struct {
	galleryService *services.GalleryService
	embedService   *services.EmbedService
	renderer       *render.Renderer
	log            logger.Logger
}

// NewGalleryHandler creates a new GalleryHandler
func NewGalleryHandler(gs *services.GalleryService, es *services.EmbedService, rr *render.Renderer, log logger.Logger) *GalleryHandler {
	return &GalleryHandler{galleryService: gs, embedService: es, renderer: rr, log: log}
}

// Index handles GET / - the full page, or just the gallery for htmx
func (h *GalleryHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	if middleware.IsHTMX(r.Context()) {
		h.write(w, func() error { return h.renderer.Gallery(w, data) })
		return
	}
	h.write(w, func() error { return h.renderer.Page(w, data) })
}

// Fragment handles GET /projects - the gallery section only
func (h *GalleryHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r)
	h.write(w, func() error { return h.renderer.Gallery(w, data) })
}

// GalleryJSON handles GET /api/gallery - the derived view as JSON
func (h *GalleryHandler) GalleryJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.galleryService.View(filter.FromQuery(r.URL.Query())))
}

func (h *GalleryHandler) pageData(r *http.Request) render.PageData {
	q := r.URL.Query()
	return render.PageData{
		View:         h.galleryService.View(filter.FromQuery(q)),
		ViewMode:     render.ParseViewMode(q.Get("view")),
		ScrollLocked: h.embedService.ScrollLocked(middleware.SessionID(r.Context())),
	}
}

func (h *GalleryHandler) write(w http.ResponseWriter, fn func() error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := fn(); err != nil {
		h.log.Error("render failed", logger.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
