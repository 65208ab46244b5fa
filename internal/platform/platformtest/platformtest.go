// Package platformtest provides an in-memory wallpaper service for tests.
package platformtest

import (
	"errors"
	"fmt"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/platform"
)

// ErrInjected is returned by calls configured to fail.
var ErrInjected = errors.New("injected failure")

// Monitor is one fake monitor.
type Monitor struct {
	ID        string
	Wallpaper string
	Bounds    platform.Rect

	// Never-set wallpapers make GetWallpaper fail on real systems.
	FailWallpaper bool
	FailBounds    bool
	FailSet       bool
}

// Service is a fake platform.MonitorService. Fields may be changed
// between calls to simulate OS state.
type Service struct {
	Monitors []*Monitor
	Color    colors.Packed
	Pos      platform.Position

	FailCount    bool
	FailGetColor bool
	FailSetColor bool
	FailGetPos   bool
	FailSetPos   bool

	// Calls records mutating calls in order, e.g. "SetWallpaper mon-0 ".
	Calls  []string
	Closed int
}

// Compile-time check that Service implements platform.MonitorService.
var _ platform.MonitorService = (*Service)(nil)

func (s *Service) find(id string) *Monitor {
	for _, m := range s.Monitors {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (s *Service) MonitorCount() (int, error) {
	if s.FailCount {
		return 0, platform.NewAdapterError("GetMonitorDevicePathCount", "", ErrInjected)
	}
	return len(s.Monitors), nil
}

func (s *Service) MonitorIDAt(index int) (string, error) {
	if index < 0 || index >= len(s.Monitors) {
		return "", platform.NewAdapterError("GetMonitorDevicePathAt", "", fmt.Errorf("index %d out of range", index))
	}
	return s.Monitors[index].ID, nil
}

func (s *Service) Wallpaper(monitorID string) (string, error) {
	m := s.find(monitorID)
	if m == nil {
		return "", platform.NewAdapterError("GetWallpaper", monitorID, errors.New("unknown monitor"))
	}
	if m.FailWallpaper {
		return "", platform.NewAdapterError("GetWallpaper", monitorID, ErrInjected)
	}
	return m.Wallpaper, nil
}

func (s *Service) MonitorBounds(monitorID string) (platform.Rect, error) {
	m := s.find(monitorID)
	if m == nil {
		return platform.Rect{}, platform.NewAdapterError("GetMonitorRECT", monitorID, errors.New("unknown monitor"))
	}
	if m.FailBounds {
		return platform.Rect{}, platform.NewAdapterError("GetMonitorRECT", monitorID, ErrInjected)
	}
	return m.Bounds, nil
}

func (s *Service) BackgroundColor() (colors.Packed, error) {
	if s.FailGetColor {
		return 0, platform.NewAdapterError("GetBackgroundColor", "", ErrInjected)
	}
	return s.Color, nil
}

func (s *Service) SetBackgroundColor(color colors.Packed) error {
	s.Calls = append(s.Calls, fmt.Sprintf("SetBackgroundColor %s", color.Hex()))
	if s.FailSetColor {
		return platform.NewAdapterError("SetBackgroundColor", "", ErrInjected)
	}
	s.Color = color
	return nil
}

func (s *Service) Position() (platform.Position, error) {
	if s.FailGetPos {
		return 0, platform.NewAdapterError("GetPosition", "", ErrInjected)
	}
	return s.Pos, nil
}

func (s *Service) SetPosition(pos platform.Position) error {
	s.Calls = append(s.Calls, fmt.Sprintf("SetPosition %s", pos))
	if s.FailSetPos {
		return platform.NewAdapterError("SetPosition", "", ErrInjected)
	}
	s.Pos = pos
	return nil
}

func (s *Service) SetWallpaper(monitorID, path string) error {
	s.Calls = append(s.Calls, fmt.Sprintf("SetWallpaper %s %s", monitorID, path))
	m := s.find(monitorID)
	if m == nil {
		return platform.NewAdapterError("SetWallpaper", monitorID, errors.New("unknown monitor"))
	}
	if m.FailSet {
		return platform.NewAdapterError("SetWallpaper", monitorID, ErrInjected)
	}
	m.Wallpaper = path
	m.FailWallpaper = false
	return nil
}

func (s *Service) Close() error {
	s.Closed++
	return nil
}

// Topology is a fake platform.DisplayTopology.
type Topology struct {
	List []platform.Display
	Err  error
}

func (t *Topology) Displays() ([]platform.Display, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.List, nil
}

// Platform wires a Service and Topology into platform.Platform.
type Platform struct {
	Service   *Service
	Topo      *Topology
	OpenErr   error
	Supported bool
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)

func (p *Platform) Name() string      { return "fake" }
func (p *Platform) IsSupported() bool { return p.Supported }

func (p *Platform) OpenMonitorService() (platform.MonitorService, error) {
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	return p.Service, nil
}

func (p *Platform) Topology() platform.DisplayTopology {
	if p.Topo == nil {
		return &Topology{}
	}
	return p.Topo
}

// TwoMonitors returns a service with a 1920x1080 primary monitor and a
// 1280x1024 monitor to its right, plus the matching topology.
func TwoMonitors() (*Service, *Topology) {
	svc := &Service{
		Monitors: []*Monitor{
			{ID: "mon-0", Wallpaper: `C:\Wallpapers\a.jpg`, Bounds: platform.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080}},
			{ID: "mon-1", Wallpaper: `C:\Wallpapers\b.png`, Bounds: platform.Rect{Left: 1920, Top: 0, Width: 1280, Height: 1024}},
		},
		Color: colors.Packed(0x00FFFFFF),
		Pos:   platform.PositionFill,
	}
	topo := &Topology{List: []platform.Display{
		{Bounds: platform.Rect{Left: 0, Top: 0, Width: 1920, Height: 1080}, Primary: true},
		{Bounds: platform.Rect{Left: 1920, Top: 0, Width: 1280, Height: 1024}},
	}}
	return svc, topo
}
