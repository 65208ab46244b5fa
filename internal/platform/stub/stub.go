// Package stub provides a fallback platform implementation for systems
// without a per-monitor wallpaper service.
package stub

import (
	"fmt"
	"runtime"

	"github.com/darkawower/bgmanager/internal/platform"
)

func init() {
	// Only Windows exposes IDesktopWallpaper. Everything else gets a
	// descriptive stub instead of the anonymous unsupported platform.
	for _, os := range []string{"linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "aix"} {
		platform.Register(os, func() platform.Platform {
			return New()
		})
	}
}

// Platform implements platform.Platform as a fallback for unsupported systems.
type Platform struct {
	name string
}

// New creates a new stub platform instance.
func New() *Platform {
	return &Platform{
		name: runtime.GOOS,
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return p.name
}

// IsSupported returns false as this is a fallback implementation.
func (p *Platform) IsSupported() bool {
	return false
}

// OpenMonitorService always fails.
func (p *Platform) OpenMonitorService() (platform.MonitorService, error) {
	return nil, fmt.Errorf("per-monitor wallpaper service not available on %s: %w", p.name, platform.ErrUnsupported)
}

// Topology returns the display topology service (stub).
func (p *Platform) Topology() platform.DisplayTopology {
	return &stubTopology{name: p.name}
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)

type stubTopology struct {
	name string
}

func (s *stubTopology) Displays() ([]platform.Display, error) {
	return nil, fmt.Errorf("display enumeration not supported on %s: %w", s.name, platform.ErrUnsupported)
}
