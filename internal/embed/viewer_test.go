package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creativetech.dev/internal/models"
)

func TestViewerStartsLoading(t *testing.T) {
	v := NewViewer(Options{URL: "https://example.com/embed", Title: "Demo"}, nil)

	assert.Equal(t, Loading, v.State())
	assert.False(t, v.Snapshot().ShowSurface())
}

func TestViewerFailRetryNeverSkipsAState(t *testing.T) {
	var seen []State
	v := NewViewer(Options{
		URL: "https://example.com/embed",
		OnTransition: func(from, to State) {
			seen = append(seen, to)
		},
	}, nil)

	require.NoError(t, v.Failed())
	assert.Equal(t, Errored, v.State())
	require.NoError(t, v.Retry())
	assert.Equal(t, Loading, v.State())

	assert.Equal(t, []State{Errored, Loading}, seen)
	assert.Equal(t, 2, v.Snapshot().Attempt)
}

func TestViewerLoadRevealsSurface(t *testing.T) {
	v := NewViewer(Options{URL: "https://example.com/embed"}, nil)

	require.NoError(t, v.Loaded())

	assert.Equal(t, Loaded, v.State())
	assert.True(t, v.Snapshot().ShowSurface())
}

func TestViewerRejectsInvalidTransitions(t *testing.T) {
	v := NewViewer(Options{URL: "https://example.com/embed"}, nil)

	assert.ErrorIs(t, v.Retry(), ErrInvalidTransition, "retry only applies after an error")

	require.NoError(t, v.Loaded())
	assert.ErrorIs(t, v.Failed(), ErrInvalidTransition)
	assert.ErrorIs(t, v.Loaded(), ErrInvalidTransition)
	assert.Equal(t, Loaded, v.State())
}

func TestViewerSetURLResetsToLoading(t *testing.T) {
	v := NewViewer(Options{URL: "https://example.com/a"}, nil)
	require.NoError(t, v.Failed())
	require.NoError(t, v.Retry())
	require.NoError(t, v.Failed())

	require.NoError(t, v.SetURL("https://example.com/a"))
	assert.Equal(t, Errored, v.State(), "same URL keeps the state")

	require.NoError(t, v.SetURL("https://example.com/b"))
	snap := v.Snapshot()
	assert.Equal(t, Loading, snap.State)
	assert.Equal(t, "https://example.com/b", snap.URL)
	assert.Equal(t, 1, snap.Attempt)
}

func TestViewerClosedRejectsEvents(t *testing.T) {
	v := NewViewer(Options{URL: "https://example.com/embed"}, nil)
	v.Close()

	assert.True(t, v.Closed())
	assert.ErrorIs(t, v.Loaded(), ErrClosed)
	assert.ErrorIs(t, v.SetURL("https://example.com/other"), ErrClosed)
}

func TestFullscreenEscapeClosesOnce(t *testing.T) {
	lock := NewScrollLock(nil)
	closes := 0
	v := NewViewer(Options{
		URL:        "https://example.com/embed",
		Fullscreen: true,
		OnClose:    func() { closes++ },
	}, lock)
	require.True(t, lock.Locked())

	assert.True(t, v.Escape())
	assert.False(t, v.Escape())
	v.Close()

	assert.Equal(t, 1, closes)
	assert.False(t, lock.Locked())
}

func TestInlineViewerIgnoresEscapeAndLock(t *testing.T) {
	lock := NewScrollLock(nil)
	closes := 0
	v := NewViewer(Options{
		URL:     "https://example.com/embed",
		OnClose: func() { closes++ },
	}, lock)

	assert.False(t, lock.Locked())
	assert.False(t, v.Escape())
	assert.Equal(t, 0, closes)
	assert.False(t, v.Closed())
}

func TestScrollLockReturnsToBaseline(t *testing.T) {
	lock := NewScrollLock(nil)

	for i := 0; i < 25; i++ {
		v := NewViewer(Options{URL: "https://example.com/embed", Fullscreen: true}, lock)
		switch i % 3 {
		case 0:
			v.Close()
		case 1:
			v.Escape()
		default:
			v.Escape()
			v.Close()
		}
	}

	assert.Equal(t, 0, lock.Holders())
}

func TestScrollLockOverlappingViewers(t *testing.T) {
	var changes, deltas []int
	lock := NewScrollLock(func(delta, n int) {
		deltas = append(deltas, delta)
		changes = append(changes, n)
	})

	a := NewViewer(Options{URL: "https://example.com/a", Fullscreen: true}, lock)
	b := NewViewer(Options{URL: "https://example.com/b", Fullscreen: true}, lock)
	assert.Equal(t, 2, lock.Holders())

	a.Close()
	assert.True(t, lock.Locked(), "b still holds the lock")
	b.Escape()
	assert.False(t, lock.Locked())

	assert.Equal(t, []int{1, 2, 1, 0}, changes)
	assert.Equal(t, []int{1, 1, -1, -1}, deltas)
}

func TestScrollLockReleaseIsIdempotent(t *testing.T) {
	lock := NewScrollLock(nil)
	release := lock.Acquire()

	release()
	release()

	assert.Equal(t, 0, lock.Holders())
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		embedType models.EmbedType
		want      string
	}{
		{models.EmbedHuggingFace, "aspect-huggingface"},
		{models.EmbedVideo, "aspect-video"},
		{models.EmbedProcessing, "aspect-square"},
		{models.EmbedIframe, "aspect-video"},
		{"", "aspect-video"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AspectRatio(tt.embedType), "type %q", tt.embedType)
	}

	fullscreen := NewViewer(Options{URL: "u", Type: models.EmbedProcessing, Fullscreen: true}, nil)
	assert.Empty(t, fullscreen.AspectRatio())
	inline := NewViewer(Options{URL: "u", Type: models.EmbedProcessing}, nil)
	assert.Equal(t, "aspect-square", inline.AspectRatio())
}
