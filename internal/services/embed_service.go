package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"creativetech.dev/internal/catalog"
	"creativetech.dev/internal/embed"
	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/metrics"
)

var (
	// ErrViewerNotFound is returned for ids that are not open in the caller's session
	ErrViewerNotFound = errors.New("embed viewer not found")
	// ErrNoEmbed is returned when a project has nothing to embed
	ErrNoEmbed = errors.New("project has no embed")
)

// ViewerInfo is an open viewer as reported to clients
type ViewerInfo struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	embed.Snapshot
	ScrollLocked bool `json:"scroll_locked"`
}

type openViewer struct {
	projectID string
	viewer    *embed.Viewer
	lastSeen  time.Time
}

// session is one visitor's page: its viewers and its scroll lock.
// A session exists only while it has open viewers.
type session struct {
	lock    *embed.ScrollLock
	viewers map[string]*openViewer
}

// EmbedService keeps the embed viewers that are currently open, grouped
// by visitor session. Viewers are independent; the viewers of one
// session share that session's scroll lock and nothing else.
type EmbedService struct {
	store   *catalog.Store
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewEmbedService creates a new EmbedService
func NewEmbedService(store *catalog.Store, log logger.Logger, m *metrics.Metrics) *EmbedService {
	return &EmbedService{
		store:    store,
		log:      log,
		metrics:  m,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// ScrollLocked reports whether a fullscreen viewer of the session holds its scroll lock
func (s *EmbedService) ScrollLocked(sessionID string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	return ok && sess.lock.Locked()
}

// Open starts a viewer for a project's embed in the given session
func (s *EmbedService) Open(sessionID, projectID string, fullscreen bool) (ViewerInfo, error) {
	project, err := s.store.Catalog().ByID(projectID)
	if err != nil {
		return ViewerInfo{}, err
	}
	if !project.HasEmbed() {
		return ViewerInfo{}, fmt.Errorf("%w: %s", ErrNoEmbed, projectID)
	}

	id := uuid.NewString()
	log := s.log.With(
		logger.String("viewer_id", id),
		logger.String("project_id", projectID),
		logger.String("session_id", sessionID),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{
			lock:    embed.NewScrollLock(s.lockChanged),
			viewers: make(map[string]*openViewer),
		}
		s.sessions[sessionID] = sess
	}

	v := embed.NewViewer(embed.Options{
		URL:        project.EmbedTarget(),
		Title:      project.Title,
		Type:       project.EmbedType,
		Fullscreen: fullscreen,
		OnClose: func() {
			if s.metrics != nil {
				s.metrics.ViewersOpen.Dec()
			}
			log.Debug("embed viewer closed")
		},
		OnTransition: func(from, to embed.State) {
			if s.metrics != nil {
				s.metrics.ViewerTransitions.WithLabelValues(string(to)).Inc()
			}
			log.Debug("embed viewer transition", logger.String("from", string(from)), logger.String("to", string(to)))
		},
	}, sess.lock)
	sess.viewers[id] = &openViewer{projectID: projectID, viewer: v, lastSeen: s.now()}

	if s.metrics != nil {
		s.metrics.ViewersOpen.Inc()
	}
	log.Debug("embed viewer opened", logger.Bool("fullscreen", fullscreen))

	return info(id, projectID, v, sess.lock), nil
}

func (s *EmbedService) lockChanged(delta, _ int) {
	if s.metrics != nil {
		s.metrics.ScrollLockHolders.Add(float64(delta))
	}
}

// Get returns the current state of a viewer and counts as activity
func (s *EmbedService) Get(sessionID, id string) (ViewerInfo, error) {
	ov, lock, err := s.lookup(sessionID, id)
	if err != nil {
		return ViewerInfo{}, err
	}
	return info(id, ov.projectID, ov.viewer, lock), nil
}

// Loaded reports a successful load
func (s *EmbedService) Loaded(sessionID, id string) (ViewerInfo, error) {
	return s.apply(sessionID, id, (*embed.Viewer).Loaded)
}

// Failed reports a failed load
func (s *EmbedService) Failed(sessionID, id string) (ViewerInfo, error) {
	return s.apply(sessionID, id, (*embed.Viewer).Failed)
}

// Retry re-attempts a failed load
func (s *EmbedService) Retry(sessionID, id string) (ViewerInfo, error) {
	return s.apply(sessionID, id, (*embed.Viewer).Retry)
}

// SetURL retargets a viewer
func (s *EmbedService) SetURL(sessionID, id, url string) (ViewerInfo, error) {
	return s.apply(sessionID, id, func(v *embed.Viewer) error { return v.SetURL(url) })
}

// Escape handles the cancel key. Fullscreen viewers close and are forgotten.
func (s *EmbedService) Escape(sessionID, id string) (ViewerInfo, error) {
	ov, lock, err := s.lookup(sessionID, id)
	if err != nil {
		return ViewerInfo{}, err
	}
	if ov.viewer.Escape() {
		s.forget(sessionID, id)
	}
	return info(id, ov.projectID, ov.viewer, lock), nil
}

// Close closes a viewer and forgets it
func (s *EmbedService) Close(sessionID, id string) error {
	s.mu.Lock()
	ov, ok := s.remove(sessionID, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewerNotFound, id)
	}
	ov.viewer.Close()
	return nil
}

// CloseAll closes every open viewer of every session, used on shutdown
func (s *EmbedService) CloseAll() {
	s.mu.Lock()
	open := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()
	for _, sess := range open {
		for _, ov := range sess.viewers {
			ov.viewer.Close()
		}
	}
}

// Sweep closes viewers with no activity for longer than idle, such as
// those left behind by a closed tab. It returns how many were closed.
func (s *EmbedService) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	var stale []*openViewer
	s.mu.Lock()
	for sid, sess := range s.sessions {
		for id, ov := range sess.viewers {
			if ov.lastSeen.Before(cutoff) {
				stale = append(stale, ov)
				delete(sess.viewers, id)
			}
		}
		if len(sess.viewers) == 0 {
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()

	for _, ov := range stale {
		ov.viewer.Close()
	}
	if len(stale) > 0 {
		s.log.Info("closed idle embed viewers", logger.Int("count", len(stale)))
	}
	return len(stale)
}

// RunSweeper calls Sweep every interval until ctx is cancelled
func (s *EmbedService) RunSweeper(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(idle)
		}
	}
}

// OpenCount returns the number of open viewers across all sessions
func (s *EmbedService) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sess := range s.sessions {
		n += len(sess.viewers)
	}
	return n
}

// SessionCount returns the number of sessions with open viewers
func (s *EmbedService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *EmbedService) apply(sessionID, id string, event func(*embed.Viewer) error) (ViewerInfo, error) {
	ov, lock, err := s.lookup(sessionID, id)
	if err != nil {
		return ViewerInfo{}, err
	}
	err = event(ov.viewer)
	return info(id, ov.projectID, ov.viewer, lock), err
}

// lookup finds a viewer of the session and marks it active
func (s *EmbedService) lookup(sessionID, id string) (*openViewer, *embed.ScrollLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrViewerNotFound, id)
	}
	ov, ok := sess.viewers[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrViewerNotFound, id)
	}
	ov.lastSeen = s.now()
	return ov, sess.lock, nil
}

func (s *EmbedService) forget(sessionID, id string) {
	s.mu.Lock()
	s.remove(sessionID, id)
	s.mu.Unlock()
}

// remove drops a viewer and its session once empty. Callers hold s.mu.
func (s *EmbedService) remove(sessionID, id string) (*openViewer, bool) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	ov, ok := sess.viewers[id]
	if !ok {
		return nil, false
	}
	delete(sess.viewers, id)
	if len(sess.viewers) == 0 {
		delete(s.sessions, sessionID)
	}
	return ov, true
}

func info(id, projectID string, v *embed.Viewer, lock *embed.ScrollLock) ViewerInfo {
	return ViewerInfo{
		ID:           id,
		ProjectID:    projectID,
		Snapshot:     v.Snapshot(),
		ScrollLocked: lock.Locked(),
	}
}
