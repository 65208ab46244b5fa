// Package settings persists wallpaper snapshots as JSON.
package settings

import (
	"os"
	"path/filepath"
	"time"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/platform"
)

// FileName is the backup file created in the user's home directory.
const FileName = "desktop_background_backup.json"

// MonitorRecord is the saved state of one monitor.
type MonitorRecord struct {
	Index         int    `json:"index"`
	MonitorID     string `json:"monitorId"`
	WallpaperPath string `json:"wallpaperPath"`
	Left          int    `json:"left"`
	Top           int    `json:"top"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	IsPrimary     bool   `json:"isPrimary"`
}

// Bounds returns the monitor rectangle.
func (m MonitorRecord) Bounds() platform.Rect {
	return platform.Rect{Left: m.Left, Top: m.Top, Width: m.Width, Height: m.Height}
}

// HasWallpaper reports whether an image is set, as opposed to a solid colour.
func (m MonitorRecord) HasWallpaper() bool {
	return m.WallpaperPath != ""
}

// Snapshot is the complete wallpaper configuration at one point in time.
type Snapshot struct {
	BackgroundColor colors.Packed     `json:"backgroundColor"`
	Position        platform.Position `json:"position"`
	Monitors        []MonitorRecord   `json:"monitors"`
	SavedAt         time.Time         `json:"savedAt"`
}

// DefaultPath returns <home>/desktop_background_backup.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}
