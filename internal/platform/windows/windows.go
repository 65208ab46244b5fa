//go:build windows

package windows

import "github.com/darkawower/bgmanager/internal/platform"

func init() {
	platform.Register("windows", func() platform.Platform {
		return New()
	})
}

// Platform implements platform.Platform for Windows 8 and later.
type Platform struct {
	topology *Topology
}

// New creates a new Windows platform instance.
func New() *Platform {
	return &Platform{
		topology: NewTopology(),
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return "windows"
}

// IsSupported returns true as Windows is fully supported.
func (p *Platform) IsSupported() bool {
	return true
}

// OpenMonitorService creates a DesktopWallpaper COM object bound to the
// calling OS thread.
func (p *Platform) OpenMonitorService() (platform.MonitorService, error) {
	setDPIAware()

	svc, err := openDesktopWallpaper()
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// Topology returns the user32 display enumeration.
func (p *Platform) Topology() platform.DisplayTopology {
	return p.topology
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)
