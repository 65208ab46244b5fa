// Package platform provides OS-agnostic abstractions for the desktop
// wallpaper service.
package platform

import (
	"github.com/darkawower/bgmanager/internal/colors"
)

// Platform provides access to OS-specific services.
type Platform interface {
	// Name returns the platform identifier (e.g., "windows", "linux").
	Name() string

	// IsSupported returns true if this platform is fully supported.
	IsSupported() bool

	// OpenMonitorService acquires the wallpaper service handle. The caller
	// owns the handle and must Close it.
	OpenMonitorService() (MonitorService, error)

	// Topology returns the secondary display enumeration used to fill in
	// what the wallpaper service cannot report.
	Topology() DisplayTopology
}

// MonitorService manages per-monitor desktop wallpaper.
type MonitorService interface {
	// MonitorCount returns the number of monitors known to the service.
	MonitorCount() (int, error)

	// MonitorIDAt returns the opaque identifier of the monitor at the given
	// enumeration position. The identifier is stable for the session.
	MonitorIDAt(index int) (string, error)

	// Wallpaper returns the image path for a monitor, or "" for none.
	Wallpaper(monitorID string) (string, error)

	// MonitorBounds returns the monitor rectangle in virtual-screen
	// coordinates.
	MonitorBounds(monitorID string) (Rect, error)

	// BackgroundColor returns the solid colour shown behind wallpapers.
	BackgroundColor() (colors.Packed, error)

	// SetBackgroundColor sets the solid background colour.
	SetBackgroundColor(color colors.Packed) error

	// Position returns how images are fitted to monitors.
	Position() (Position, error)

	// SetPosition sets how images are fitted to monitors.
	SetPosition(pos Position) error

	// SetWallpaper sets the image for a monitor. An empty path clears the
	// image and exposes the background colour.
	SetWallpaper(monitorID, path string) error

	// Close releases the service handle. Calling Close twice is a no-op.
	Close() error
}

// DisplayTopology enumerates attached displays independently of the
// wallpaper service.
type DisplayTopology interface {
	// Displays returns displays in OS enumeration order.
	Displays() ([]Display, error)
}

// Rect is a monitor rectangle.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// RectFromEdges builds a Rect from edge coordinates. Inverted edges
// produce zero size.
func RectFromEdges(left, top, right, bottom int) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Width:  max(right-left, 0),
		Height: max(bottom-top, 0),
	}
}

// Display is one entry of the display topology.
type Display struct {
	Bounds  Rect
	Primary bool
}
