package core

import (
	"fmt"

	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/darkawower/bgmanager/internal/settings"
)

// enumerateMonitors builds one record per monitor the service reports.
// Wallpaper and bounds failures degrade the record instead of dropping it:
// a failed wallpaper query means "no wallpaper", failed bounds fall back to
// the display topology at the same position and then to a placeholder.
func (m *Manager) enumerateMonitors() ([]settings.MonitorRecord, []int, error) {
	count, err := m.svc.MonitorCount()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count monitors: %w", err)
	}

	displays := m.displays()

	records := make([]settings.MonitorRecord, 0, count)
	var degraded []int

	for i := 0; i < count; i++ {
		id, err := m.svc.MonitorIDAt(i)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get monitor %d: %w", i, err)
		}

		wallpaper, err := m.svc.Wallpaper(id)
		if err != nil {
			m.log.Debug("Monitor %d: no wallpaper reported (%v)", i, err)
			wallpaper = ""
		}

		rec := settings.MonitorRecord{
			Index:         i,
			MonitorID:     id,
			WallpaperPath: wallpaper,
		}

		bounds, err := m.svc.MonitorBounds(id)
		switch {
		case err == nil:
			rec.IsPrimary = primaryAt(displays, bounds, i)
		case i < len(displays):
			m.log.Debug("Monitor %d: bounds unavailable, using display %d (%v)", i, i, err)
			bounds = displays[i].Bounds
			rec.IsPrimary = displays[i].Primary
		default:
			m.log.Warning("Monitor %d: bounds unavailable, recording %dx%d placeholder (%v)",
				i, m.placeholder.Width, m.placeholder.Height, err)
			bounds = m.placeholder
			rec.IsPrimary = i == 0
			degraded = append(degraded, i)
		}

		rec.Left = bounds.Left
		rec.Top = bounds.Top
		rec.Width = max(bounds.Width, 0)
		rec.Height = max(bounds.Height, 0)

		records = append(records, rec)
	}

	return records, degraded, nil
}

// displays fetches the secondary topology. Failure is not fatal; it only
// removes a fallback.
func (m *Manager) displays() []platform.Display {
	if m.topo == nil {
		return nil
	}
	list, err := m.topo.Displays()
	if err != nil {
		m.log.Debug("Display topology unavailable: %v", err)
		return nil
	}
	return list
}

// primaryAt matches bounds to a topology entry by top-left corner. Without a
// match the first enumerated monitor is assumed primary; this is a
// heuristic, the service itself has no notion of a primary monitor.
func primaryAt(displays []platform.Display, bounds platform.Rect, index int) bool {
	for _, d := range displays {
		if d.Bounds.Left == bounds.Left && d.Bounds.Top == bounds.Top {
			return d.Primary
		}
	}
	return index == 0
}

// monitorIDs lists the identifiers of all currently enumerated monitors.
func (m *Manager) monitorIDs() ([]string, error) {
	count, err := m.svc.MonitorCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count monitors: %w", err)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := m.svc.MonitorIDAt(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get monitor %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
