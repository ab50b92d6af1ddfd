// Package filter derives the visible projects from the catalog and the
// criteria chosen in the sidebar, filter bar and search box.
package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"creativetech.dev/internal/models"
)

// Source is the catalog view the filter reads from
type Source interface {
	// CategoryIDs returns category ids in declaration order.
	CategoryIDs() []string
	// InCategory returns one category's records, nil for unknown ids.
	InCategory(id string) []models.Project
}

// keywords maps each content type to the lowercased tags that place a project in it
var keywords = map[models.ContentType][]string{
	models.ContentCode:    {"python", "javascript", "react", "c#", "processing"},
	models.ContentVisuals: {"p5.js", "processing", "tensorflow", "unity", "jitter"},
	models.ContentAudio:   {"max msp", "audio", "jitter", "synthesis"},
}

// Keywords returns the tag keywords for a content type. ALL has none.
func Keywords(ct models.ContentType) []string {
	return slices.Clone(keywords[ct])
}

// Apply returns the projects matching c, in catalog order.
// It never mutates src and never fails; no match yields an empty slice.
func Apply(src Source, c Criteria) []models.Project {
	projects := selectCategory(src, c.Category)

	if ct := normalizeContentType(c.ContentType); ct != models.ContentAll {
		projects = keep(projects, func(p models.Project) bool {
			return matchesContentType(p, ct)
		})
	}

	if query := strings.TrimSpace(c.Search); query != "" {
		needle := lower(query)
		projects = keep(projects, func(p models.Project) bool {
			return matchesSearch(p, needle)
		})
	}

	if projects == nil {
		projects = []models.Project{}
	}
	return projects
}

// normalizeContentType folds case and treats unknown values as ALL
func normalizeContentType(ct models.ContentType) models.ContentType {
	parsed, err := models.ParseContentType(string(ct))
	if err != nil {
		return models.ContentAll
	}
	return parsed
}

func selectCategory(src Source, category string) []models.Project {
	if category == models.AllCategories || category == "" {
		var all []models.Project
		for _, id := range src.CategoryIDs() {
			all = append(all, src.InCategory(id)...)
		}
		return all
	}
	return src.InCategory(category)
}

func matchesContentType(p models.Project, ct models.ContentType) bool {
	wanted := keywords[ct]
	for _, tag := range p.Tags {
		if slices.Contains(wanted, lower(tag)) {
			return true
		}
	}
	return false
}

func matchesSearch(p models.Project, needle string) bool {
	if strings.Contains(lower(p.Title), needle) || strings.Contains(lower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(lower(tag), needle) {
			return true
		}
	}
	return false
}

func keep(projects []models.Project, pred func(models.Project) bool) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// lower uses a fresh Caser per call since Casers hold state
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
