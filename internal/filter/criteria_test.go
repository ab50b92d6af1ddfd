package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"creativetech.dev/internal/models"
)

func TestCriteriaValueSemantics(t *testing.T) {
	base := Default()
	changed := base.WithCategory("ai-gems").WithContentType(models.ContentCode).WithSearch("umap")

	assert.Equal(t, Default(), base)
	assert.Equal(t, Criteria{Category: "ai-gems", ContentType: models.ContentCode, Search: "umap"}, changed)
}

func TestCriteriaClearedKeepsCategory(t *testing.T) {
	c := Criteria{Category: "audio-max-msp", ContentType: models.ContentVisuals, Search: "synth"}

	assert.Equal(t, Criteria{Category: "audio-max-msp", ContentType: models.ContentAll}, c.Cleared())
}

func TestCriteriaEmptyValuesFallBack(t *testing.T) {
	c := Default().WithCategory("").WithContentType("")

	assert.True(t, c.IsDefault())
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Criteria
	}{
		{"empty", "", Default()},
		{"all fields", "category=ai-gems&type=code&q=UMAP", Criteria{Category: "ai-gems", ContentType: models.ContentCode, Search: "UMAP"}},
		{"unknown type", "type=sculpture", Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FromQuery(q))
		})
	}
}

func TestQueryOmitsDefaults(t *testing.T) {
	assert.Empty(t, Default().Query())

	c := Default().WithCategory("ai-gems").WithContentType(models.ContentAudio).WithSearch("max msp")
	assert.Equal(t, c, FromQuery(c.Query()))
}

func TestCriteriaWithContentTypeNormalizes(t *testing.T) {
	assert.Equal(t, models.ContentCode, Default().WithContentType("code").ContentType)
	assert.Equal(t, models.ContentAll, Default().WithContentType("GAMES").ContentType)
	assert.True(t, Default().WithContentType("games").IsDefault())
}
