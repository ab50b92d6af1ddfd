// Package embed manages the load lifecycle of an embedded external page
// shown inline on a project card or fullscreen over the gallery.
package embed

import (
	"errors"
	"fmt"
	"sync"

	"creativetech.dev/internal/models"
)

var (
	// ErrInvalidTransition is returned when an event does not apply to the current state.
	ErrInvalidTransition = errors.New("invalid embed transition")
	// ErrClosed is returned for events sent to a closed viewer.
	ErrClosed = errors.New("embed viewer closed")
)

// State is the load state of the embedded surface
type State string

const (
	Loading State = "loading"
	Loaded  State = "loaded"
	Errored State = "errored"
)

// Options configure a viewer
type Options struct {
	URL        string
	Title      string
	Type       models.EmbedType
	Fullscreen bool
	// OnClose runs once when the viewer is closed, by any path.
	OnClose func()
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// Viewer tracks one opened embed. It starts Loading; a load signal moves
// it to Loaded, a failure to Errored, and only an explicit Retry leaves
// Errored. There is no timeout: without a signal it stays Loading.
type Viewer struct {
	mu        sync.Mutex
	opts      Options
	state     State
	attempt   int
	closed    bool
	release   func()
	closeOnce sync.Once
}

// NewViewer opens a viewer. Fullscreen viewers take a hold on lock until closed.
func NewViewer(opts Options, lock Lock) *Viewer {
	v := &Viewer{opts: opts, state: Loading, attempt: 1}
	if opts.Fullscreen && lock != nil {
		v.release = lock.Acquire()
	}
	return v
}

// State returns the current state
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Loaded handles the surface's load signal
func (v *Viewer) Loaded() error {
	return v.transition(Loading, Loaded)
}

// Failed handles the surface's error signal
func (v *Viewer) Failed() error {
	return v.transition(Loading, Errored)
}

// Retry re-requests the surface after a failure
func (v *Viewer) Retry() error {
	return v.transition(Errored, Loading)
}

// SetURL points the viewer at a different URL. A changed URL always restarts loading.
func (v *Viewer) SetURL(url string) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if url == v.opts.URL {
		v.mu.Unlock()
		return nil
	}
	from := v.state
	v.opts.URL = url
	v.state = Loading
	v.attempt = 1
	v.mu.Unlock()

	v.notify(from, Loading)
	return nil
}

// Escape handles the cancel key. Only fullscreen viewers react; it
// reports whether the viewer closed.
func (v *Viewer) Escape() bool {
	v.mu.Lock()
	active := v.opts.Fullscreen && !v.closed
	v.mu.Unlock()
	if !active {
		return false
	}
	v.Close()
	return true
}

// Close tears the viewer down: the scroll lock is released and OnClose
// runs. Calling it again does nothing.
func (v *Viewer) Close() {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		v.closed = true
		release := v.release
		v.mu.Unlock()

		if release != nil {
			release()
		}
		if v.opts.OnClose != nil {
			v.opts.OnClose()
		}
	})
}

// Closed reports whether Close has run
func (v *Viewer) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// AspectRatio returns the frame class for inline viewers; fullscreen fills the page
func (v *Viewer) AspectRatio() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.opts.Fullscreen {
		return ""
	}
	return AspectRatio(v.opts.Type)
}

// AspectRatio maps an embed type to its frame class
func AspectRatio(t models.EmbedType) string {
	switch t {
	case models.EmbedHuggingFace:
		return "aspect-huggingface"
	case models.EmbedProcessing:
		return "aspect-square"
	default:
		return "aspect-video"
	}
}

func (v *Viewer) transition(from, to State) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if v.state != from {
		current := v.state
		v.mu.Unlock()
		return fmt.Errorf("%w: %s to %s from %s", ErrInvalidTransition, from, to, current)
	}
	v.state = to
	if from == Errored && to == Loading {
		v.attempt++
	}
	v.mu.Unlock()

	v.notify(from, to)
	return nil
}

func (v *Viewer) notify(from, to State) {
	if v.opts.OnTransition != nil {
		v.opts.OnTransition(from, to)
	}
}

// Snapshot is a point-in-time copy of a viewer for rendering
type Snapshot struct {
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Type        models.EmbedType `json:"type"`
	Fullscreen  bool             `json:"fullscreen"`
	State       State            `json:"state"`
	Attempt     int              `json:"attempt"`
	AspectRatio string           `json:"aspect_ratio,omitempty"`
	Closed      bool             `json:"closed"`
}

// ShowSurface reports whether the content frame should be visible
func (s Snapshot) ShowSurface() bool {
	return s.State == Loaded
}

// Snapshot copies the viewer state
func (v *Viewer) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := Snapshot{
		URL:        v.opts.URL,
		Title:      v.opts.Title,
		Type:       v.opts.Type,
		Fullscreen: v.opts.Fullscreen,
		State:      v.state,
		Attempt:    v.attempt,
		Closed:     v.closed,
	}
	if !v.opts.Fullscreen {
		s.AspectRatio = AspectRatio(v.opts.Type)
	}
	return s
}
