// Package catalog holds the static collection of portfolio projects grouped by category.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"creativetech.dev/internal/models"
)

// ErrProjectNotFound is returned when no record has the requested id
var ErrProjectNotFound = errors.New("project not found")

// Catalog is the read-only set of categories and their projects.
// Category order is the order of the descriptor list.
type Catalog struct {
	categories []models.Category
	projects   map[string][]models.Project
}

// New builds a catalog from category descriptors and records grouped by category id.
// The inputs are copied so later changes by the caller are not visible.
func New(categories []models.Category, projects map[string][]models.Project) *Catalog {
	c := &Catalog{
		categories: slices.Clone(categories),
		projects:   make(map[string][]models.Project, len(projects)),
	}
	for id, group := range projects {
		c.projects[id] = slices.Clone(group)
	}
	return c
}

// Categories returns the category descriptors in declaration order
func (c *Catalog) Categories() []models.Category {
	return slices.Clone(c.categories)
}

// CategoryIDs returns the category ids in declaration order
func (c *Catalog) CategoryIDs() []string {
	ids := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

// HasCategory reports whether id names a declared category
func (c *Catalog) HasCategory(id string) bool {
	for _, cat := range c.categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

// Category returns the descriptor for id
func (c *Catalog) Category(id string) (models.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return models.Category{}, false
}

// InCategory returns the records of one category in declaration order.
// Unknown ids yield nil.
func (c *Catalog) InCategory(id string) []models.Project {
	return slices.Clone(c.projects[id])
}

// All returns every record, categories concatenated in declaration order
func (c *Catalog) All() []models.Project {
	all := make([]models.Project, 0, c.Count())
	for _, cat := range c.categories {
		all = append(all, c.projects[cat.ID]...)
	}
	return all
}

// ByID returns the record with the given id
func (c *Catalog) ByID(id string) (models.Project, error) {
	for _, cat := range c.categories {
		for _, p := range c.projects[cat.ID] {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// Featured returns the featured records across all categories
func (c *Catalog) Featured() []models.Project {
	var featured []models.Project
	for _, p := range c.All() {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

// ByTag returns the records carrying tag exactly as written
func (c *Catalog) ByTag(tag string) []models.Project {
	var tagged []models.Project
	for _, p := range c.All() {
		if slices.Contains(p.Tags, tag) {
			tagged = append(tagged, p)
		}
	}
	return tagged
}

// Tags returns every distinct tag, sorted
func (c *Catalog) Tags() []string {
	seen := make(map[string]struct{})
	for _, group := range c.projects {
		for _, p := range group {
			for _, t := range p.Tags {
				seen[t] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Count returns the total number of records
func (c *Catalog) Count() int {
	n := 0
	for _, cat := range c.categories {
		n += len(c.projects[cat.ID])
	}
	return n
}

// CountIn returns the number of records in one category
func (c *Catalog) CountIn(id string) int {
	return len(c.projects[id])
}
