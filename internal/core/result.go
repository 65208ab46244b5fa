// Package core implements the save, restore and solid-fallback operations
// on top of the platform wallpaper service.
package core

import (
	"github.com/darkawower/bgmanager/internal/settings"
)

// CaptureResult is a freshly captured snapshot.
type CaptureResult struct {
	Snapshot *settings.Snapshot

	// Degraded lists monitor indices whose bounds are placeholders.
	Degraded []int
}

// SaveResult is the outcome of Save.
type SaveResult struct {
	// Path is where the snapshot was written.
	Path string

	Snapshot *settings.Snapshot
	Degraded []int
}

// MonitorFailure records a per-monitor error that did not stop a batch.
type MonitorFailure struct {
	Index     int
	MonitorID string
	Err       error
}

// MonitorOutcome is the result of applying a wallpaper to one monitor.
type MonitorOutcome struct {
	Index         int
	MonitorID     string
	WallpaperPath string
}

// BatchResult is the outcome of SetSolidFallback.
type BatchResult struct {
	Color    string
	Cleared  []MonitorOutcome
	Failures []MonitorFailure
}

// Total returns the number of monitors the batch attempted.
func (r *BatchResult) Total() int {
	return len(r.Cleared) + len(r.Failures)
}

// RestoreResult is the outcome of Restore.
type RestoreResult struct {
	Path     string
	Snapshot *settings.Snapshot
	Restored []MonitorOutcome
	Failures []MonitorFailure
}

// RestoredCount returns the number of monitors restored successfully.
func (r *RestoreResult) RestoredCount() int {
	return len(r.Restored)
}

// StatusResult is the current live state plus information about the backup.
type StatusResult struct {
	Current  *settings.Snapshot
	Degraded []int

	BackupPath string
	// BackupExists is true when a file is present at BackupPath, even one
	// that holds no snapshot.
	BackupExists bool
	// Backup is nil when no snapshot has been saved or it cannot be read.
	Backup *settings.Snapshot
	// BackupErr is set when a backup exists but cannot be loaded.
	BackupErr error
}

// InSync reports whether the backup matches the live configuration: same
// colour, position and wallpaper per monitor index. Bounds are ignored.
func (r *StatusResult) InSync() bool {
	if r.Current == nil || r.Backup == nil {
		return false
	}
	if r.Current.BackgroundColor != r.Backup.BackgroundColor || r.Current.Position != r.Backup.Position {
		return false
	}
	if len(r.Current.Monitors) != len(r.Backup.Monitors) {
		return false
	}

	saved := make(map[int]string, len(r.Backup.Monitors))
	for _, rec := range r.Backup.Monitors {
		saved[rec.Index] = rec.WallpaperPath
	}
	for _, rec := range r.Current.Monitors {
		path, ok := saved[rec.Index]
		if !ok || path != rec.WallpaperPath {
			return false
		}
	}
	return true
}
