package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/embed"
	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/middleware"
	"creativetech.dev/internal/render"
	"creativetech.dev/internal/services"
)

// EmbedHandler handles the embed viewer endpoints
type EmbedHandler struct {
	embedService *services.EmbedService
	renderer     *render.Renderer
	log          logger.Logger
}

// NewEmbedHandler creates a new EmbedHandler
func NewEmbedHandler(es *services.EmbedService, rr *render.Renderer, log logger.Logger) *EmbedHandler {
	return &EmbedHandler{embedService: es, renderer: rr, log: log}
}

type openRequest struct {
	ProjectID  string `json:"project_id"`
	Fullscreen bool   `json:"fullscreen"`
}

// Open handles POST /api/embeds
func (h *EmbedHandler) Open(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOpen(r)
	if err != nil || req.ProjectID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.embedService.Open(middleware.SessionID(r.Context()), req.ProjectID, req.Fullscreen)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r, http.StatusCreated, info)
}

// Get handles GET /api/embeds/{id} and the POST /api/embeds/{id}/ping keepalive
func (h *EmbedHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, h.embedService.Get)
}

// Loaded handles POST /api/embeds/{id}/load
func (h *EmbedHandler) Loaded(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, h.embedService.Loaded)
}

// Failed handles POST /api/embeds/{id}/error
func (h *EmbedHandler) Failed(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, h.embedService.Failed)
}

// Retry handles POST /api/embeds/{id}/retry
func (h *EmbedHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, h.embedService.Retry)
}

// Escape handles POST /api/embeds/{id}/escape
func (h *EmbedHandler) Escape(w http.ResponseWriter, r *http.Request) {
	h.event(w, r, h.embedService.Escape)
}

// SetURL handles PUT /api/embeds/{id}/url
func (h *EmbedHandler) SetURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.event(w, r, func(sessionID, id string) (services.ViewerInfo, error) {
		return h.embedService.SetURL(sessionID, id, req.URL)
	})
}

// Close handles DELETE /api/embeds/{id} and POST /api/embeds/{id}/close,
// the latter sent by the page as a beacon when it goes away
func (h *EmbedHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.embedService.Close(middleware.SessionID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	if middleware.IsHTMX(r.Context()) {
		// An empty body makes htmx remove the viewer.
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmbedHandler) event(w http.ResponseWriter, r *http.Request, fn func(sessionID, id string) (services.ViewerInfo, error)) {
	info, err := fn(middleware.SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, info)
}

func (h *EmbedHandler) respond(w http.ResponseWriter, r *http.Request, status int, info services.ViewerInfo) {
	if !middleware.IsHTMX(r.Context()) {
		respondJSON(w, status, info)
		return
	}
	if info.Closed {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Viewer(w, info); err != nil {
		h.log.Error("render viewer failed", logger.Error(err))
	}
}

func (h *EmbedHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrViewerNotFound), errors.Is(err, catalog.ErrProjectNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNoEmbed):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, embed.ErrInvalidTransition), errors.Is(err, embed.ErrClosed):
		respondError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("embed request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeOpen accepts a JSON body or form values, since htmx posts forms
func decodeOpen(r *http.Request) (openRequest, error) {
	var req openRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.ProjectID = r.PostFormValue("project_id")
	if v := r.PostFormValue("fullscreen"); v != "" {
		fs, err := strconv.ParseBool(v)
		if err != nil {
			return req, err
		}
		req.Fullscreen = fs
	}
	return req, nil
}
