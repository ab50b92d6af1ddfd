package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creativetech.dev/internal/embed"
	"creativetech.dev/internal/filter"
	"creativetech.dev/internal/models"
	"creativetech.dev/internal/services"
	fixtures "creativetech.dev/internal/testutil"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{})
	require.NoError(t, err)
	return r
}

func galleryData(t *testing.T, c filter.Criteria) PageData {
	t.Helper()
	gs := services.NewGalleryService(fixtures.Store(t), nil)
	return PageData{View: gs.View(c), ViewMode: ViewGrid}
}

func TestParseViewMode(t *testing.T) {
	assert.Equal(t, ViewList, ParseViewMode("list"))
	assert.Equal(t, ViewList, ParseViewMode(" LIST "))
	assert.Equal(t, ViewGrid, ParseViewMode(""))
	assert.Equal(t, ViewGrid, ParseViewMode("table"))
}

func TestDescriptionSanitizes(t *testing.T) {
	r := newRenderer(t)

	out := string(r.Description("Uses **UMAP** <script>alert(1)</script>"))

	assert.Contains(t, out, "<strong>UMAP</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestPage(t *testing.T) {
	r := newRenderer(t)
	data := galleryData(t, filter.Default().WithCategory("huggingface-apps"))
	data.ScrollLocked = true

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, data))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<body class="overflow-hidden">`)
	assert.Contains(t, out, "Sentiment Analyzer")
	assert.Contains(t, out, "Launch App")
	assert.Contains(t, out, "LIVE")
	assert.Contains(t, out, `<input type="hidden" name="category" value="huggingface-apps">`)
	assert.NotContains(t, out, "Granular Synth")
}

func TestGalleryButtons(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Gallery(&buf, galleryData(t, filter.Default())))

	out := buf.String()
	assert.Contains(t, out, "View Case Study")
	assert.Contains(t, out, "Open Demo")
	assert.Contains(t, out, `href="/?type=AUDIO"`)
	assert.NotContains(t, out, "No projects found")
}

func TestGalleryCardsAndFilterBar(t *testing.T) {
	r := newRenderer(t)
	c := filter.Default().WithContentType(models.ContentVisuals)

	var buf bytes.Buffer
	require.NoError(t, r.Gallery(&buf, galleryData(t, c)))

	doc := fixtures.ParseHTML(t, buf.Bytes())
	var cards []string
	doc.Find("article.project-card").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		cards = append(cards, id)
	})
	assert.Equal(t, []string{"project-neural-dreamscapes", "project-recursive-flora", "project-city-sim-v2", "project-granular-synth"}, cards)

	assert.Equal(t, 4, doc.Find("a.filter-btn").Length())
	assert.Equal(t, "VISUALS", strings.TrimSpace(doc.Find("a.filter-btn.active").Text()))
	assert.Equal(t, "Processing", doc.Find("#project-recursive-flora .category-badge").Text())
}

func TestGalleryTitleAndReset(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Gallery(&buf, galleryData(t, filter.Default())))
	doc := fixtures.ParseHTML(t, buf.Bytes())
	assert.Equal(t, "All Projects", doc.Find("h2.text-2xl").Text())
	assert.Equal(t, 0, doc.Find("a.reset-link").Length())

	buf.Reset()
	require.NoError(t, r.Gallery(&buf, galleryData(t, filter.Default().WithCategory("ai-gems"))))
	doc = fixtures.ParseHTML(t, buf.Bytes())
	assert.Equal(t, "AI Gems", doc.Find("h2.text-2xl").Text())
	href, _ := doc.Find("a.reset-link").Attr("href")
	assert.Equal(t, "/", href)
}

func TestGalleryEmptyState(t *testing.T) {
	r := newRenderer(t)
	c := filter.Default().WithCategory("ai-gems").WithContentType(models.ContentAudio)

	var buf bytes.Buffer
	require.NoError(t, r.Gallery(&buf, galleryData(t, c)))

	out := buf.String()
	assert.Contains(t, out, "No projects found matching your criteria.")
	assert.Contains(t, out, `href="/?category=ai-gems"`)
}

func TestGalleryListMode(t *testing.T) {
	r := newRenderer(t)
	data := galleryData(t, filter.Default())
	data.ViewMode = ViewList

	var buf bytes.Buffer
	require.NoError(t, r.Gallery(&buf, data))

	assert.Contains(t, buf.String(), `class="space-y-4"`)
}

func TestViewer(t *testing.T) {
	r := newRenderer(t)
	info := services.ViewerInfo{
		ID:        "v1",
		ProjectID: "recursive-flora",
		Snapshot: embed.Snapshot{
			URL:         "https://openprocessing.org/sketch/1/embed/",
			Title:       "Recursive Flora",
			Type:        models.EmbedProcessing,
			State:       embed.Errored,
			Attempt:     1,
			AspectRatio: "aspect-square",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Viewer(&buf, info))

	out := buf.String()
	assert.Contains(t, out, `data-state="errored"`)
	assert.Contains(t, out, "Failed to load content")
	assert.Contains(t, out, "/api/embeds/v1/retry")
	assert.Contains(t, out, "aspect-square")
	assert.Contains(t, out, "opacity-0")

	doc := fixtures.ParseHTML(t, buf.Bytes())
	closeBtn := doc.Find("button.embed-close")
	require.Equal(t, 1, closeBtn.Length())
	target, _ := closeBtn.Attr("hx-delete")
	assert.Equal(t, "/api/embeds/v1", target)
}
