package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/models"
	"creativetech.dev/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	galleryService *services.GalleryService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, gs *services.GalleryService) *ProjectHandler {
	return &ProjectHandler{projectService: ps, galleryService: gs}
}

// ListProjects handles GET /api/projects?category=&type=&q=&featured=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if featured, _ := strconv.ParseBool(q.Get("featured")); featured {
		respondJSON(w, http.StatusOK, nonNil(h.projectService.Featured()))
		return
	}
	respondJSON(w, http.StatusOK, h.galleryService.Filter(filter.FromQuery(q)))
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.projectService.GetByID(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// ListCategories handles GET /api/categories
func (h *ProjectHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.projectService.Categories())
}

// ListTagProjects handles GET /api/tags/{tag}/projects
func (h *ProjectHandler) ListTagProjects(w http.ResponseWriter, r *http.Request) {
	tag, err := url.PathUnescape(chi.URLParam(r, "tag"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tag")
		return
	}
	respondJSON(w, http.StatusOK, nonNil(h.projectService.ByTag(tag)))
}

// ListTags handles GET /api/tags
func (h *ProjectHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.projectService.Tags())
}

func nonNil(projects []models.Project) []models.Project {
	if projects == nil {
		return []models.Project{}
	}
	return projects
}
