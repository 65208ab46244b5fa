//go:build windows

package windows

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/platform"
)

// Pulled from ShObjIdl_core.h
const (
	clsidDesktopWallpaper = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
	iidDesktopWallpaper   = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"
)

const sFalse = 1

var errMonitorDetached = errors.New("monitor is enumerated but not attached")

// IDesktopWallpaper does not extend IDispatch so the vtable is laid out by hand.
type desktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// DesktopWallpaper implements platform.MonitorService. COM requires every
// call to come from the OS thread that created it, so the goroutine stays
// locked to that thread until Close.
type DesktopWallpaper struct {
	unknown *ole.IUnknown
	vtable  *desktopWallpaperVtbl
	closed  bool
}

// Compile-time check that DesktopWallpaper implements platform.MonitorService.
var _ platform.MonitorService = (*DesktopWallpaper)(nil)

func openDesktopWallpaper() (*DesktopWallpaper, error) {
	runtime.LockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil && !isSFalse(err) {
		runtime.UnlockOSThread()
		return nil, platform.NewAdapterError("CoInitializeEx", "", err)
	}

	unknown, err := ole.CreateInstance(ole.NewGUID(clsidDesktopWallpaper), ole.NewGUID(iidDesktopWallpaper))
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, platform.NewAdapterError("CoCreateInstance(DesktopWallpaper)", "", err)
	}

	return &DesktopWallpaper{
		unknown: unknown,
		vtable:  (*desktopWallpaperVtbl)(unsafe.Pointer(unknown.RawVTable)),
	}, nil
}

func isSFalse(err error) bool {
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == sFalse
}

// call invokes a vtable method and converts a failing HRESULT into an error.
// Success codes such as S_FALSE are returned to the caller.
func (d *DesktopWallpaper) call(method uintptr, args ...uintptr) (uintptr, error) {
	if d.closed {
		return 0, errors.New("desktop wallpaper service is closed")
	}
	hr, _, _ := syscall.SyscallN(method, append([]uintptr{uintptr(unsafe.Pointer(d.unknown))}, args...)...)
	if int32(hr) < 0 {
		return hr, ole.NewError(hr)
	}
	return hr, nil
}

// takeString copies and frees a string allocated by the COM server.
func takeString(p *uint16) string {
	if p == nil {
		return ""
	}
	s := windows.UTF16PtrToString(p)
	windows.CoTaskMemFree(unsafe.Pointer(p))
	return s
}

func (d *DesktopWallpaper) MonitorCount() (int, error) {
	var count uint32
	if _, err := d.call(d.vtable.GetMonitorDevicePathCount, uintptr(unsafe.Pointer(&count))); err != nil {
		return 0, platform.NewAdapterError("GetMonitorDevicePathCount", "", err)
	}
	return int(count), nil
}

func (d *DesktopWallpaper) MonitorIDAt(index int) (string, error) {
	if index < 0 {
		return "", platform.NewAdapterError("GetMonitorDevicePathAt", "", fmt.Errorf("negative index %d", index))
	}

	var out *uint16
	if _, err := d.call(d.vtable.GetMonitorDevicePathAt, uintptr(uint32(index)), uintptr(unsafe.Pointer(&out))); err != nil {
		return "", platform.NewAdapterError("GetMonitorDevicePathAt", "", fmt.Errorf("index %d: %w", index, err))
	}
	return takeString(out), nil
}

func (d *DesktopWallpaper) Wallpaper(monitorID string) (string, error) {
	id, err := windows.UTF16PtrFromString(monitorID)
	if err != nil {
		return "", platform.NewAdapterError("GetWallpaper", monitorID, err)
	}

	var out *uint16
	if _, err := d.call(d.vtable.GetWallpaper, uintptr(unsafe.Pointer(id)), uintptr(unsafe.Pointer(&out))); err != nil {
		return "", platform.NewAdapterError("GetWallpaper", monitorID, err)
	}
	return takeString(out), nil
}

func (d *DesktopWallpaper) MonitorBounds(monitorID string) (platform.Rect, error) {
	id, err := windows.UTF16PtrFromString(monitorID)
	if err != nil {
		return platform.Rect{}, platform.NewAdapterError("GetMonitorRECT", monitorID, err)
	}

	var r windows.Rect
	hr, err := d.call(d.vtable.GetMonitorRECT, uintptr(unsafe.Pointer(id)), uintptr(unsafe.Pointer(&r)))
	if err != nil {
		return platform.Rect{}, platform.NewAdapterError("GetMonitorRECT", monitorID, err)
	}
	if hr == sFalse {
		return platform.Rect{}, platform.NewAdapterError("GetMonitorRECT", monitorID, errMonitorDetached)
	}
	return platform.RectFromEdges(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom)), nil
}

func (d *DesktopWallpaper) BackgroundColor() (colors.Packed, error) {
	var c uint32
	if _, err := d.call(d.vtable.GetBackgroundColor, uintptr(unsafe.Pointer(&c))); err != nil {
		return 0, platform.NewAdapterError("GetBackgroundColor", "", err)
	}
	return colors.Packed(c & 0x00FFFFFF), nil
}

func (d *DesktopWallpaper) SetBackgroundColor(color colors.Packed) error {
	if _, err := d.call(d.vtable.SetBackgroundColor, uintptr(uint32(color)&0x00FFFFFF)); err != nil {
		return platform.NewAdapterError("SetBackgroundColor", "", err)
	}
	return nil
}

func (d *DesktopWallpaper) Position() (platform.Position, error) {
	var pos int32
	if _, err := d.call(d.vtable.GetPosition, uintptr(unsafe.Pointer(&pos))); err != nil {
		return 0, platform.NewAdapterError("GetPosition", "", err)
	}
	p := platform.Position(pos)
	if !p.Valid() {
		return 0, platform.NewAdapterError("GetPosition", "", fmt.Errorf("unexpected position value %d", pos))
	}
	return p, nil
}

func (d *DesktopWallpaper) SetPosition(pos platform.Position) error {
	if !pos.Valid() {
		return platform.NewAdapterError("SetPosition", "", fmt.Errorf("invalid position %d", int(pos)))
	}
	if _, err := d.call(d.vtable.SetPosition, uintptr(pos)); err != nil {
		return platform.NewAdapterError("SetPosition", "", err)
	}
	return nil
}

func (d *DesktopWallpaper) SetWallpaper(monitorID, path string) error {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return platform.NewAdapterError("SetWallpaper", monitorID, err)
		}
		f, err := os.Open(abs)
		if err != nil {
			return platform.NewAdapterError("SetWallpaper", monitorID, fmt.Errorf("wallpaper not readable: %w", err))
		}
		f.Close()
		path = abs
	}

	id, err := windows.UTF16PtrFromString(monitorID)
	if err != nil {
		return platform.NewAdapterError("SetWallpaper", monitorID, err)
	}
	wp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return platform.NewAdapterError("SetWallpaper", monitorID, err)
	}

	if _, err := d.call(d.vtable.SetWallpaper, uintptr(unsafe.Pointer(id)), uintptr(unsafe.Pointer(wp))); err != nil {
		return platform.NewAdapterError("SetWallpaper", monitorID, err)
	}
	return nil
}

// Close releases the COM object, uninitializes COM on this thread and
// unlocks the goroutine.
func (d *DesktopWallpaper) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	d.unknown.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	return nil
}
