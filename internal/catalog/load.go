package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"creativetech.dev/internal/models"
)

// document is the on-disk layout of a catalog file
type document struct {
	Categories []models.Category           `yaml:"categories"`
	Projects   map[string][]models.Project `yaml:"projects"`
}

// Load reads, parses and validates the catalog file at path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document and validates it
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := New(doc.Categories, doc.Projects)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the catalog invariants that the filter relies on:
// unique record ids, grouping keys that match each record's category,
// and grouping keys that name a declared category.
// All problems are reported together.
func (c *Catalog) Validate() error {
	var errs []error

	declared := make(map[string]bool, len(c.categories))
	for _, cat := range c.categories {
		if strings.TrimSpace(cat.ID) == "" {
			errs = append(errs, errors.New("category with empty id"))
			continue
		}
		if declared[cat.ID] {
			errs = append(errs, fmt.Errorf("duplicate category %q", cat.ID))
		}
		declared[cat.ID] = true
	}

	seen := make(map[string]string)
	for key, group := range c.projects {
		if !declared[key] {
			errs = append(errs, fmt.Errorf("projects grouped under undeclared category %q", key))
		}
		for _, p := range group {
			if strings.TrimSpace(p.ID) == "" {
				errs = append(errs, fmt.Errorf("project with empty id in category %q", key))
				continue
			}
			if prev, dup := seen[p.ID]; dup {
				errs = append(errs, fmt.Errorf("duplicate project id %q in %q and %q", p.ID, prev, key))
			}
			seen[p.ID] = key
			if p.Category != key {
				errs = append(errs, fmt.Errorf("project %q has category %q but is grouped under %q", p.ID, p.Category, key))
			}
			if strings.TrimSpace(p.Title) == "" {
				errs = append(errs, fmt.Errorf("project %q has no title", p.ID))
			}
			if !p.EmbedType.Valid() {
				errs = append(errs, fmt.Errorf("project %q has unknown embed type %q", p.ID, p.EmbedType))
			}
			if !p.ButtonType.Valid() {
				errs = append(errs, fmt.Errorf("project %q has unknown button type %q", p.ID, p.ButtonType))
			}
		}
	}

	return errors.Join(errs...)
}
