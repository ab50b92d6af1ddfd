package filter

import (
	"net/url"

	"creativetech.dev/internal/models"
)

// Criteria is the three-part filter state. It is a value: every change
// returns a new Criteria and leaves the receiver untouched.
type Criteria struct {
	Category    string             `json:"category"`
	ContentType models.ContentType `json:"content_type"`
	Search      string             `json:"search"`
}

// Default selects everything
func Default() Criteria {
	return Criteria{
		Category:    models.AllCategories,
		ContentType: models.ContentAll,
	}
}

// WithCategory returns c with the category replaced
func (c Criteria) WithCategory(id string) Criteria {
	if id == "" {
		id = models.AllCategories
	}
	c.Category = id
	return c
}

// WithContentType returns c with the content type replaced.
// Case is folded and unknown values become ALL.
func (c Criteria) WithContentType(ct models.ContentType) Criteria {
	c.ContentType = normalizeContentType(ct)
	return c
}

// WithSearch returns c with the search text replaced
func (c Criteria) WithSearch(text string) Criteria {
	c.Search = text
	return c
}

// Cleared is the "clear filters" action of the empty state: content type
// and search are reset, the category is kept.
func (c Criteria) Cleared() Criteria {
	c.ContentType = models.ContentAll
	c.Search = ""
	return c
}

// IsDefault reports whether c selects everything
func (c Criteria) IsDefault() bool {
	return c == Default()
}

// FromQuery reads criteria from the category, type and q query parameters.
// Unknown content types fall back to ALL.
func FromQuery(q url.Values) Criteria {
	ct, err := models.ParseContentType(q.Get("type"))
	if err != nil {
		ct = models.ContentAll
	}
	return Default().
		WithCategory(q.Get("category")).
		WithContentType(ct).
		WithSearch(q.Get("q"))
}

// Query encodes c as query parameters, omitting defaults
func (c Criteria) Query() url.Values {
	q := url.Values{}
	if c.Category != "" && c.Category != models.AllCategories {
		q.Set("category", c.Category)
	}
	if c.ContentType != "" && c.ContentType != models.ContentAll {
		q.Set("type", string(c.ContentType))
	}
	if c.Search != "" {
		q.Set("q", c.Search)
	}
	return q
}
