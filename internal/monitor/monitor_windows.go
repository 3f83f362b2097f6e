//go:build windows

package monitor

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazyDLL("user32.dll")
	shcore                  = windows.NewLazyDLL("shcore.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procGetDpiForMonitor    = shcore.NewProc("GetDpiForMonitor")
)

const (
	_MONITORINFOF_PRIMARY     = 0x1
	_MONITOR_DEFAULTTONEAREST = 0x2
	_MDT_EFFECTIVE_DPI        = 0
	_USER_DEFAULT_SCREEN_DPI  = 96
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor rect
	RcWork    rect
	DwFlags   uint32
	SzDevice  [32]uint16
}

func toRect(r rect) Rect {
	return Rect{
		X: int(r.Left),
		Y: int(r.Top),
		W: int(r.Right - r.Left),
		H: int(r.Bottom - r.Top),
	}
}

// Win32 callbacks are never released, so the enumeration callback is
// created once and feeds a guarded package-level slice.
var (
	enumMu     sync.Mutex
	enumResult []Monitor

	enumCallback = windows.NewCallback(func(hMonitor, hdc, lprc, lparam uintptr) uintptr {
		enumResult = append(enumResult, describe(hMonitor))
		return 1 // continue enumeration
	})
)

// Enumerate lists the attached displays in virtual-desktop coordinates.
func Enumerate() []Monitor {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumResult = nil
	procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	out := make([]Monitor, len(enumResult))
	copy(out, enumResult)
	return out
}

func describe(hMonitor uintptr) Monitor {
	var info monitorInfoEx
	info.CbSize = uint32(unsafe.Sizeof(info))
	ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return Monitor{ID: "unknown", Scale: 1.0}
	}

	return Monitor{
		ID:       windows.UTF16ToString(info.SzDevice[:]),
		Bounds:   toRect(info.RcMonitor),
		WorkArea: toRect(info.RcWork),
		Primary:  info.DwFlags&_MONITORINFOF_PRIMARY != 0,
		Scale:    scaleOf(hMonitor),
	}
}

func scaleOf(hMonitor uintptr) float64 {
	var dpiX, dpiY uint32
	ret, _, _ := procGetDpiForMonitor.Call(
		hMonitor,
		_MDT_EFFECTIVE_DPI,
		uintptr(unsafe.Pointer(&dpiX)),
		uintptr(unsafe.Pointer(&dpiY)),
	)
	if ret != 0 || dpiX == 0 { // S_OK is zero
		return 1.0
	}
	return float64(dpiX) / _USER_DEFAULT_SCREEN_DPI
}

// ForegroundID names the monitor hosting the foreground window, or ""
// when there is none.
func ForegroundID() string {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ""
	}
	hMonitor, _, _ := procMonitorFromWindow.Call(hwnd, _MONITOR_DEFAULTTONEAREST)
	if hMonitor == 0 {
		return ""
	}
	return describe(hMonitor).ID
}
