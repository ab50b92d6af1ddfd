package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"creativetech.dev/internal/logger"
	"creativetech.dev/internal/metrics"
)

const reloadDebounce = 100 * time.Millisecond

// Store holds the catalog currently being served and swaps it on reload
type Store struct {
	path    string
	current atomic.Pointer[Catalog]
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewStore loads the catalog file at path
func NewStore(path string, log logger.Logger, m *metrics.Metrics) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, log: log, metrics: m}
	s.current.Store(c)
	return s, nil
}

// NewStaticStore serves a fixed catalog that is never reloaded
func NewStaticStore(c *Catalog) *Store {
	s := &Store{log: logger.NewNop()}
	s.current.Store(c)
	return s
}

// Catalog returns the catalog currently being served
func (s *Store) Catalog() *Catalog {
	return s.current.Load()
}

// Reload re-reads the catalog file. On failure the previous catalog stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return errors.New("store has no backing file")
	}
	c, err := Load(s.path)
	if err != nil {
		s.recordReload("error")
		return err
	}
	s.current.Store(c)
	s.recordReload("ok")
	s.log.Info("catalog reloaded", logger.String("path", s.path), logger.Int("projects", c.Count()))
	return nil
}

func (s *Store) recordReload(result string) {
	if s.metrics != nil {
		s.metrics.CatalogReloads.WithLabelValues(result).Inc()
	}
}

// Watch reloads the catalog whenever its file is written or replaced.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return errors.New("store has no backing file")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.path, err)
	}
	target := filepath.Clean(s.path)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := s.Reload(); err != nil {
					s.log.Warn("catalog reload failed, keeping previous catalog", logger.Error(err))
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("catalog watcher error", logger.Error(err))
		}
	}
}
