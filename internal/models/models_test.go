package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in   string
		want ContentType
	}{
		{"", ContentAll},
		{"all", ContentAll},
		{"CODE", ContentCode},
		{" visuals ", ContentVisuals},
		{"Audio", ContentAudio},
	}
	for _, tt := range tests {
		got, err := ParseContentType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseContentType("GAMES")
	assert.Error(t, err)
}

func TestButtonType(t *testing.T) {
	assert.Equal(t, "View Source", ButtonType("").Label())
	assert.Equal(t, "View Source", ButtonSource.Label())
	assert.Equal(t, "Launch App", ButtonLaunch.Label())
	assert.Equal(t, "Listen", ButtonListen.Label())
	assert.Equal(t, "View Case Study", ButtonView.Label())

	assert.True(t, ButtonType("").Valid())
	assert.False(t, ButtonType("download").Valid())
}

func TestEmbedTypeValid(t *testing.T) {
	assert.True(t, EmbedType("").Valid())
	assert.True(t, EmbedHuggingFace.Valid())
	assert.False(t, EmbedType("flash").Valid())
}

func TestEmbedTarget(t *testing.T) {
	assert.False(t, Project{}.HasEmbed())

	live := Project{LiveURL: "https://example.com/live"}
	assert.True(t, live.HasEmbed())
	assert.Equal(t, "https://example.com/live", live.EmbedTarget())

	both := Project{EmbedURL: "https://example.com/embed", LiveURL: "https://example.com/live"}
	assert.Equal(t, "https://example.com/embed", both.EmbedTarget())
}

func TestCategoryLookups(t *testing.T) {
	assert.Equal(t, "music_note", CategoryIcon(Category{ID: "audio-max-msp"}))
	assert.Equal(t, "star", CategoryIcon(Category{ID: "audio-max-msp", Icon: "star"}))
	assert.Equal(t, "folder", CategoryIcon(Category{ID: "misc"}))

	assert.Equal(t, "category-badge huggingface", BadgeClass("huggingface-apps"))
	assert.Equal(t, "category-badge", BadgeClass("misc"))
	assert.Equal(t, "Audio / MSP", BadgeLabel("audio-max-msp"))
	assert.Equal(t, "misc", BadgeLabel("misc"))
}
