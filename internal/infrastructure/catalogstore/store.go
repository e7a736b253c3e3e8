// Package catalogstore loads device catalogs from disk, indexes them, and
// hot-reloads them when the backing files change.  When no catalog path is
// configured, or a file cannot be read at startup, the compiled-in catalog
// is served instead so the engine never starts without resolution data.
package catalogstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/FireCircuit-Intelligence/internal/config"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/catalog"
	"github.com/turtacn/FireCircuit-Intelligence/internal/domain/device"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FireCircuit-Intelligence/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

// Conventional file names inside the catalog directory.
const (
	NotificationFile = "notification.json"
	InitiatingFile   = "initiating.json"
)

// Snapshot is one immutable loaded-and-indexed catalog generation.
// Readers hold the whole snapshot so a reload can never hand them a
// notification index from one generation and an initiating index from
// another.
type Snapshot struct {
	Bundle       catalog.Bundle
	Notification *catalog.Index
	Initiating   *catalog.Index
	Source       string // "builtin" or the directory path
	LoadedAt     time.Time
}

// Store serves the current catalog snapshot and keeps it fresh.
type Store struct {
	path    string
	log     logging.Logger
	metrics *prometheus.EngineMetrics

	mu      sync.RWMutex
	current *Snapshot

	cbMu     sync.Mutex
	onReload []func(*Snapshot)

	reloads singleflight.Group
	watcher *fsnotify.Watcher

	closeOnce sync.Once
	done      chan struct{}
}

// New builds a Store from configuration.  With an empty path the
// compiled-in catalog is indexed and served; with a path the two JSON
// files are loaded, falling back to the compiled-in catalog when the
// initial load fails.  Watch starts an fsnotify loop over the directory.
func New(cfg config.CatalogConfig, log logging.Logger, metrics *prometheus.EngineMetrics) (*Store, error) {
	s := &Store{
		path:    cfg.Path,
		log:     log.Named("catalogstore"),
		metrics: metrics,
		done:    make(chan struct{}),
	}

	snap, err := s.load()
	if err != nil {
		s.log.Warn("catalog load failed, serving compiled-in catalog",
			logging.String("path", cfg.Path), logging.Err(err))
		snap = s.builtinSnapshot()
		s.recordReload("fallback", snap)
	} else {
		s.recordReload("ok", snap)
	}
	s.current = snap

	if cfg.Watch && cfg.Path != "" {
		if err := s.startWatcher(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Current returns the live snapshot.  The result must not be mutated.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Indexes returns the notification and initiating indexes of the live
// snapshot.
func (s *Store) Indexes() (*catalog.Index, *catalog.Index) {
	snap := s.Current()
	return snap.Notification, snap.Initiating
}

// OnReload registers a callback invoked after every successful reload
// with the new snapshot.  Callbacks run on the reloading goroutine and
// must not call Reload.
func (s *Store) OnReload(fn func(*Snapshot)) {
	s.cbMu.Lock()
	s.onReload = append(s.onReload, fn)
	s.cbMu.Unlock()
}

// Reload forces a synchronous reload.  Concurrent callers share one load;
// a failed reload leaves the previous snapshot in place.
func (s *Store) Reload(ctx context.Context) error {
	ch := s.reloads.DoChan("reload", func() (any, error) {
		snap, err := s.load()
		if err != nil {
			s.recordReloadFailure(err)
			return nil, err
		}
		s.mu.Lock()
		s.current = snap
		s.mu.Unlock()
		s.recordReload("ok", snap)
		s.notifyReload(snap)
		return snap, nil
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the watcher goroutine when one is running.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *Store) load() (*Snapshot, error) {
	if s.path == "" {
		return s.builtinSnapshot(), nil
	}
	notification, err := readCatalog(filepath.Join(s.path, NotificationFile))
	if err != nil {
		return nil, err
	}
	initiating, err := readCatalog(filepath.Join(s.path, InitiatingFile))
	if err != nil {
		return nil, err
	}
	bundle := catalog.Bundle{Notification: notification, Initiating: initiating}
	return s.index(bundle, s.path), nil
}

func (s *Store) builtinSnapshot() *Snapshot {
	return s.index(catalog.BuiltinBundle(), "builtin")
}

func (s *Store) index(bundle catalog.Bundle, source string) *Snapshot {
	return &Snapshot{
		Bundle:       bundle,
		Notification: catalog.BuildIndex(device.ClassNotification, bundle.Notification),
		Initiating:   catalog.BuildIndex(device.ClassInitiating, bundle.Initiating),
		Source:       source,
		LoadedAt:     time.Now(),
	}
}

func readCatalog(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCatalogNotLoaded, "read catalog file")
	}
	c := &catalog.Catalog{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCatalogParseFailed, "parse catalog file")
	}
	if c.Version == "" {
		return nil, apperrors.Newf(apperrors.ErrCodeCatalogVersionEmpty,
			"catalog file %s has no version", filepath.Base(path))
	}
	return c, nil
}

func (s *Store) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCatalogNotLoaded, "start catalog watcher")
	}
	if err := w.Add(s.path); err != nil {
		w.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeCatalogNotLoaded, "watch catalog directory")
	}
	s.watcher = w
	go s.watchLoop()
	return nil
}

func (s *Store) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			if name != NotificationFile && name != InitiatingFile {
				continue
			}
			s.log.Info("catalog file changed", logging.String("file", name))
			if err := s.Reload(context.Background()); err != nil {
				s.log.Error("catalog reload failed, keeping previous snapshot",
					logging.Err(err))
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("catalog watcher error", logging.Err(err))
		}
	}
}

func (s *Store) notifyReload(snap *Snapshot) {
	s.cbMu.Lock()
	callbacks := make([]func(*Snapshot), len(s.onReload))
	copy(callbacks, s.onReload)
	s.cbMu.Unlock()
	for _, fn := range callbacks {
		fn(snap)
	}
}

func (s *Store) recordReload(outcome string, snap *Snapshot) {
	version := ""
	if snap.Bundle.Notification != nil {
		version = snap.Bundle.Notification.Version
	}
	s.log.Info("catalog loaded",
		logging.String("source", snap.Source),
		logging.String("version", version),
		logging.Int("notification_records", snap.Notification.Len()),
		logging.Int("initiating_records", snap.Initiating.Len()))
	if s.metrics == nil {
		return
	}
	s.metrics.CatalogReloadsTotal.WithLabelValues(outcome).Inc()
	s.metrics.CatalogRecords.WithLabelValues(string(device.ClassNotification)).
		Set(float64(snap.Notification.Len()))
	s.metrics.CatalogRecords.WithLabelValues(string(device.ClassInitiating)).
		Set(float64(snap.Initiating.Len()))
}

func (s *Store) recordReloadFailure(err error) {
	s.log.Error("catalog reload failed", logging.Err(err))
	if s.metrics != nil {
		s.metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
	}
}
