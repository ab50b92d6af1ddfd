// Package render turns gallery views into HTML pages and htmx fragments.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/models"
	"creativetech.dev/internal/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ViewMode is the card layout
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode returns grid for anything but "list"
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewList)) {
		return ViewList
	}
	return ViewGrid
}

// PageData is the input of the full page and the gallery fragment
type PageData struct {
	View         services.GalleryView
	ViewMode     ViewMode
	ScrollLocked bool
}

// Options configure a Renderer
type Options struct {
	// Dev reparses templates from Dir on every render.
	Dev bool
	Dir string
}

// Renderer executes the site templates
type Renderer struct {
	opts   Options
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu   sync.RWMutex
	tmpl *template.Template
}

// New parses the templates once, from disk in dev mode or from the binary otherwise
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		opts:   opts,
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
	t, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.tmpl = t
	return r, nil
}

// Description renders a markdown description to sanitized HTML
func (r *Renderer) Description(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Page writes the full gallery page
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, "base", data)
}

// Gallery writes only the gallery section, for htmx swaps
func (r *Renderer) Gallery(w io.Writer, data PageData) error {
	return r.execute(w, "gallery", data)
}

// Viewer writes the embed viewer fragment
func (r *Renderer) Viewer(w io.Writer, info services.ViewerInfo) error {
	return r.execute(w, "viewer", info)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	t, err := r.templates()
	if err != nil {
		return err
	}
	// Render into a buffer so a failing template never leaves half a page.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("template exec %s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.opts.Dev {
		t, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.tmpl = t
		r.mu.Unlock()
		return t, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tmpl, nil
}

func (r *Renderer) parse() (*template.Template, error) {
	var source fs.FS = templateFS
	pattern := "templates/*.tmpl"
	if r.opts.Dev && r.opts.Dir != "" {
		source = os.DirFS(r.opts.Dir)
		pattern = "*.tmpl"
	}
	t, err := template.New("_root").Funcs(r.funcs()).ParseFS(source, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"now":          time.Now,
		"description":  r.Description,
		"badgeClass":   models.BadgeClass,
		"badgeLabel":   models.BadgeLabel,
		"categoryIcon": models.CategoryIcon,
		"contentTypes": func() []models.ContentType { return models.ContentTypes },
		"categoryURL": func(c filter.Criteria, id string) string {
			return href(c.WithCategory(id))
		},
		"typeURL": func(c filter.Criteria, ct models.ContentType) string {
			return href(c.WithContentType(ct))
		},
		"criteriaURL": href,
		"fragmentURL": func(c filter.Criteria) string {
			return withQuery("/projects", c.Query())
		},
		"viewURL": func(c filter.Criteria, mode string) string {
			q := c.Query()
			if ParseViewMode(mode) == ViewList {
				q.Set("view", string(ViewList))
			}
			return withQuery("/", q)
		},
	}
}

func href(c filter.Criteria) string {
	return withQuery("/", c.Query())
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
