package services

import (
	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/metrics"
	"creativetech.dev/internal/models"
)

// CategoryEntry is one sidebar link
type CategoryEntry struct {
	models.Category
	Count  int  `json:"count"`
	Active bool `json:"active"`
}

// GalleryView is everything needed to draw the gallery for one set of criteria.
// ClearFilters is what the empty state's "clear filters" action selects.
type GalleryView struct {
	Criteria     filter.Criteria  `json:"criteria"`
	Title        string           `json:"title"`
	Categories   []CategoryEntry  `json:"categories"`
	Projects     []models.Project `json:"projects"`
	Total        int              `json:"total"`
	Empty        bool             `json:"empty"`
	ClearFilters filter.Criteria  `json:"clear_filters"`
}

// GalleryService derives gallery views from the catalog
type GalleryService struct {
	store   *catalog.Store
	metrics *metrics.Metrics
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(store *catalog.Store, m *metrics.Metrics) *GalleryService {
	return &GalleryService{store: store, metrics: m}
}

// View filters the catalog with c and assembles the view
func (s *GalleryService) View(c filter.Criteria) GalleryView {
	cat := s.store.Catalog()
	projects := filter.Apply(cat, c)
	if s.metrics != nil {
		s.metrics.ObserveFilter(string(c.ContentType), len(projects))
	}

	descriptors := cat.Categories()
	entries := make([]CategoryEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, CategoryEntry{
			Category: d,
			Count:    cat.CountIn(d.ID),
			Active:   d.ID == c.Category,
		})
	}

	return GalleryView{
		Criteria:     c,
		Title:        title(cat, c.Category),
		Categories:   entries,
		Projects:     projects,
		Total:        cat.Count(),
		Empty:        len(projects) == 0,
		ClearFilters: c.Cleared(),
	}
}

// Filter returns only the matching projects
func (s *GalleryService) Filter(c filter.Criteria) []models.Project {
	projects := filter.Apply(s.store.Catalog(), c)
	if s.metrics != nil {
		s.metrics.ObserveFilter(string(c.ContentType), len(projects))
	}
	return projects
}

func title(cat *catalog.Catalog, category string) string {
	if category == models.AllCategories || category == "" {
		return "All Projects"
	}
	if d, ok := cat.Category(category); ok {
		return d.Title
	}
	return category
}
