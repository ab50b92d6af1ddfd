package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/models"
	"creativetech.dev/internal/testutil"
)

func TestParseFixture(t *testing.T) {
	c := testutil.Catalog(t)

	assert.Equal(t, 6, c.Count())
	assert.Equal(t, []string{"ai-gems", "processing-sketches", "ai-simulations", "huggingface-apps", "audio-max-msp"}, c.CategoryIDs())
	assert.Equal(t, 2, c.CountIn("ai-gems"))
	assert.True(t, c.HasCategory("audio-max-msp"))
	assert.False(t, c.HasCategory("all"))
}

func TestByID(t *testing.T) {
	c := testutil.Catalog(t)

	p, err := c.ByID("granular-synth")
	require.NoError(t, err)
	assert.Equal(t, "Granular Synth", p.Title)
	assert.Equal(t, models.ButtonListen, p.ButtonType)

	_, err = c.ByID("missing")
	assert.True(t, errors.Is(err, catalog.ErrProjectNotFound))
}

func TestQueries(t *testing.T) {
	c := testutil.Catalog(t)

	var featured []string
	for _, p := range c.Featured() {
		featured = append(featured, p.ID)
	}
	assert.Equal(t, []string{"neural-dreamscapes", "recursive-flora"}, featured)

	tagged := c.ByTag("Python")
	require.Len(t, tagged, 2)
	assert.Empty(t, c.ByTag("python"), "tag lookup is exact")

	tags := c.Tags()
	assert.Contains(t, tags, "Max MSP")
	assert.IsIncreasing(t, tags)

	assert.Nil(t, c.InCategory("unknown"))
}

func TestCatalogIsolatedFromCaller(t *testing.T) {
	groups := map[string][]models.Project{
		"a": {{ID: "one", Title: "One", Category: "a"}},
	}
	c := catalog.New([]models.Category{{ID: "a", Title: "A"}}, groups)

	groups["a"][0].Title = "changed"
	got := c.InCategory("a")
	got[0].Title = "also changed"

	p, err := c.ByID("one")
	require.NoError(t, err)
	assert.Equal(t, "One", p.Title)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "duplicate id across categories",
			yaml: `
categories: [{id: a, title: A}, {id: b, title: B}]
projects:
  a: [{id: dup, title: One, category: a}]
  b: [{id: dup, title: Two, category: b}]
`,
			want: []string{`duplicate project id "dup"`},
		},
		{
			name: "category field disagrees with grouping key",
			yaml: `
categories: [{id: a, title: A}, {id: b, title: B}]
projects:
  a: [{id: one, title: One, category: b}]
`,
			want: []string{`project "one" has category "b" but is grouped under "a"`},
		},
		{
			name: "undeclared grouping key",
			yaml: `
categories: [{id: a, title: A}]
projects:
  ghost: [{id: one, title: One, category: ghost}]
`,
			want: []string{`undeclared category "ghost"`},
		},
		{
			name: "bad enums and missing title",
			yaml: `
categories: [{id: a, title: A}, {id: a, title: Again}]
projects:
  a: [{id: one, category: a, embed_type: hologram, button_type: buy}]
`,
			want: []string{
				`duplicate category "a"`,
				`project "one" has no title`,
				`unknown embed type "hologram"`,
				`unknown button type "buy"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.yaml))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := catalog.Parse([]byte("categories: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse catalog")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load("does/not/exist.yaml")
	assert.ErrorContains(t, err, "failed to read catalog")
}
