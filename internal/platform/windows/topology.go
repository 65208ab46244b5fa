//go:build windows

package windows

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/darkawower/bgmanager/internal/platform"
)

const monitorInfoPrimary = 0x1 // MONITORINFOF_PRIMARY

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procSetProcessDPIAware  = user32.NewProc("SetProcessDPIAware")

	dpiOnce sync.Once
)

type monitorInfo struct {
	CbSize    uint32
	RcMonitor windows.Rect
	RcWork    windows.Rect
	DwFlags   uint32
}

// setDPIAware makes user32 and the wallpaper service agree on physical
// pixel coordinates. Failure leaves the process DPI virtualized.
func setDPIAware() {
	dpiOnce.Do(func() {
		if procSetProcessDPIAware.Find() == nil {
			procSetProcessDPIAware.Call()
		}
	})
}

// Topology enumerates monitors through user32, in the same order the
// desktop window manager reports screens.
type Topology struct{}

// NewTopology creates a new user32 topology source.
func NewTopology() *Topology {
	return &Topology{}
}

// Displays returns every attached display with its bounds and primary flag.
func (t *Topology) Displays() ([]platform.Display, error) {
	var (
		displays []platform.Display
		infoErr  error
	)

	cb := windows.NewCallback(func(hMonitor windows.Handle, hdc windows.Handle, rect *windows.Rect, lparam uintptr) uintptr {
		info := monitorInfo{}
		info.CbSize = uint32(unsafe.Sizeof(info))

		ret, _, err := procGetMonitorInfoW.Call(uintptr(hMonitor), uintptr(unsafe.Pointer(&info)))
		if ret == 0 {
			infoErr = err
			return 0
		}

		r := info.RcMonitor
		displays = append(displays, platform.Display{
			Bounds:  platform.RectFromEdges(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)),
			Primary: info.DwFlags&monitorInfoPrimary != 0,
		})
		return 1
	})

	ret, _, err := procEnumDisplayMonitors.Call(0, 0, cb, 0)
	if ret == 0 {
		if infoErr != nil {
			return nil, platform.NewAdapterError("GetMonitorInfoW", "", infoErr)
		}
		return nil, platform.NewAdapterError("EnumDisplayMonitors", "", err)
	}

	return displays, nil
}

// Compile-time check that Topology implements platform.DisplayTopology.
var _ platform.DisplayTopology = (*Topology)(nil)
