package core

import (
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/darkawower/bgmanager/internal/settings"
)

// Logger receives diagnostics about degraded results. *ui.Output
// satisfies it.
type Logger interface {
	Warning(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})   {}

// Manager runs wallpaper operations against one open service handle. It
// keeps no state between operations.
type Manager struct {
	svc   platform.MonitorService
	topo  platform.DisplayTopology
	store *settings.Store

	// Options
	log         Logger
	now         func() time.Time
	fallback    colors.Packed
	placeholder platform.Rect
}

// Option is a function that configures the Manager.
type Option func(*Manager)

// WithLogger sets the diagnostics sink.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the capture timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithFallbackColor sets the colour used by SetSolidFallback.
func WithFallbackColor(c colors.Packed) Option {
	return func(m *Manager) {
		m.fallback = c
	}
}

// WithPlaceholder sets the bounds recorded when a monitor's geometry is
// unknown.
func WithPlaceholder(r platform.Rect) Option {
	return func(m *Manager) {
		m.placeholder = r
	}
}

// New creates a Manager. topo may be nil, which disables the topology
// fallback.
func New(svc platform.MonitorService, topo platform.DisplayTopology, store *settings.Store, opts ...Option) *Manager {
	m := &Manager{
		svc:         svc,
		topo:        topo,
		store:       store,
		log:         nopLogger{},
		now:         time.Now,
		fallback:    colors.White.Packed(),
		placeholder: platform.Rect{Width: 1920, Height: 1080},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// StorePath returns the snapshot file location.
func (m *Manager) StorePath() string {
	return m.store.Path()
}

// Capture reads the live configuration. It does not change OS state.
func (m *Manager) Capture() (*CaptureResult, error) {
	color, err := m.svc.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("failed to read background color: %w", err)
	}

	pos, err := m.svc.Position()
	if err != nil {
		return nil, fmt.Errorf("failed to read wallpaper position: %w", err)
	}

	monitors, degraded, err := m.enumerateMonitors()
	if err != nil {
		return nil, err
	}

	return &CaptureResult{
		Snapshot: &settings.Snapshot{
			BackgroundColor: color,
			Position:        pos,
			Monitors:        monitors,
			SavedAt:         m.now(),
		},
		Degraded: degraded,
	}, nil
}

// Save captures the live configuration and writes it to the store,
// replacing any previous snapshot.
func (m *Manager) Save() (*SaveResult, error) {
	captured, err := m.Capture()
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(captured.Snapshot); err != nil {
		return nil, err
	}

	return &SaveResult{
		Path:     m.store.Path(),
		Snapshot: captured.Snapshot,
		Degraded: captured.Degraded,
	}, nil
}

// SetSolidFallback sets the fallback colour and removes the image from
// every monitor. A monitor that cannot be cleared is reported in
// Failures and does not stop the others.
func (m *Manager) SetSolidFallback() (*BatchResult, error) {
	ids, err := m.monitorIDs()
	if err != nil {
		return nil, err
	}

	if err := m.svc.SetBackgroundColor(m.fallback); err != nil {
		return nil, fmt.Errorf("failed to set background color: %w", err)
	}

	result := &BatchResult{Color: m.fallback.Hex()}
	for i, id := range ids {
		if err := m.svc.SetWallpaper(id, ""); err != nil {
			m.log.Debug("SetWallpaper(%s, \"\") failed: %v", id, err)
			result.Failures = append(result.Failures, MonitorFailure{Index: i, MonitorID: id, Err: err})
			continue
		}
		result.Cleared = append(result.Cleared, MonitorOutcome{Index: i, MonitorID: id})
	}

	return result, nil
}

// Restore applies the saved snapshot. It returns an error matching
// settings.ErrNotFound when nothing has been saved. Monitors that no longer
// exist or reject their wallpaper are reported in Failures.
func (m *Manager) Restore() (*RestoreResult, error) {
	snap, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, pkgerrors.WithStack(&settings.NotFoundError{Path: m.store.Path()})
	}

	if err := m.svc.SetBackgroundColor(snap.BackgroundColor); err != nil {
		return nil, fmt.Errorf("failed to restore background color: %w", err)
	}
	if err := m.svc.SetPosition(snap.Position); err != nil {
		return nil, fmt.Errorf("failed to restore wallpaper position: %w", err)
	}

	result := &RestoreResult{Path: m.store.Path(), Snapshot: snap}
	for _, rec := range snap.Monitors {
		if err := m.svc.SetWallpaper(rec.MonitorID, rec.WallpaperPath); err != nil {
			m.log.Debug("SetWallpaper(%s, %q) failed: %v", rec.MonitorID, rec.WallpaperPath, err)
			result.Failures = append(result.Failures, MonitorFailure{Index: rec.Index, MonitorID: rec.MonitorID, Err: err})
			continue
		}
		result.Restored = append(result.Restored, MonitorOutcome{
			Index:         rec.Index,
			MonitorID:     rec.MonitorID,
			WallpaperPath: rec.WallpaperPath,
		})
	}

	return result, nil
}

// Status captures the live configuration and loads the saved snapshot, if
// any, for comparison. A broken backup file is reported, not returned.
func (m *Manager) Status() (*StatusResult, error) {
	captured, err := m.Capture()
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Current:    captured.Snapshot,
		Degraded:   captured.Degraded,
		BackupPath: m.store.Path(),
	}
	if !m.store.Exists() {
		return result, nil
	}
	result.BackupExists = true

	backup, err := m.store.Load()
	if err != nil {
		result.BackupErr = err
		return result, nil
	}
	result.Backup = backup

	return result, nil
}

// IsNotFound reports whether err means no snapshot has been saved.
func IsNotFound(err error) bool {
	return errors.Is(err, settings.ErrNotFound)
}
