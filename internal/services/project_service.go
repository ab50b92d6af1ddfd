package services

import (
	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/models"
)

// ProjectService handles project-related operations
type ProjectService struct {
	store *catalog.Store
}

// NewProjectService creates a new ProjectService
func NewProjectService(store *catalog.Store) *ProjectService {
	return &ProjectService{store: store}
}

// GetAll returns all projects in catalog order
func (s *ProjectService) GetAll() []models.Project {
	return s.store.Catalog().All()
}

// GetByID returns a specific project by ID
func (s *ProjectService) GetByID(id string) (models.Project, error) {
	return s.store.Catalog().ByID(id)
}

// Categories returns the category descriptors in sidebar order
func (s *ProjectService) Categories() []models.Category {
	return s.store.Catalog().Categories()
}

// Featured returns the featured projects
func (s *ProjectService) Featured() []models.Project {
	return s.store.Catalog().Featured()
}

// Tags returns every distinct tag
func (s *ProjectService) Tags() []string {
	return s.store.Catalog().Tags()
}

// ByTag returns the projects carrying a tag
func (s *ProjectService) ByTag(tag string) []models.Project {
	return s.store.Catalog().ByTag(tag)
}
