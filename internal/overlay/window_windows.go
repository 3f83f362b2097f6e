//go:build windows

package overlay

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"clock-overlay/internal/config"
	"clock-overlay/internal/monitor"
)

const (
	className   = "ClockOR_Overlay"
	windowTitle = "ClockOR"
	tickTimerID = 1
	tickMillis  = 1000
)

const (
	_WS_POPUP          = 0x80000000
	_WS_EX_TOPMOST     = 0x00000008
	_WS_EX_TRANSPARENT = 0x00000020
	_WS_EX_TOOLWINDOW  = 0x00000080
	_WS_EX_LAYERED     = 0x00080000

	_LWA_COLORKEY = 0x1
	_LWA_ALPHA    = 0x2

	_SWP_NOACTIVATE    = 0x0010
	_SW_HIDE           = 0
	_SW_SHOWNOACTIVATE = 4

	_WM_DESTROY       = 0x0002
	_WM_PAINT         = 0x000F
	_WM_QUIT          = 0x0012
	_WM_DISPLAYCHANGE = 0x007E
	_WM_TIMER         = 0x0113
	_WM_DPICHANGED    = 0x02E0

	_PM_REMOVE   = 0x0001
	_QS_ALLINPUT = 0x04FF

	_TRANSPARENT_BK      = 1
	_FW_BOLD             = 700
	_DEFAULT_CHARSET     = 1
	_OUT_TT_PRECIS       = 4
	_CLIP_DEFAULT_PRECIS = 0
	_CLEARTYPE_QUALITY   = 5
	_FF_SWISS            = 0x20

	_IDC_ARROW = 32512
)

var _HWND_TOPMOST = ^uintptr(0) // (HWND)-1

var (
	user32 = windows.NewLazyDLL("user32.dll")
	gdi32  = windows.NewLazyDLL("gdi32.dll")

	procRegisterClassW             = user32.NewProc("RegisterClassW")
	procCreateWindowExW            = user32.NewProc("CreateWindowExW")
	procDefWindowProcW             = user32.NewProc("DefWindowProcW")
	procDestroyWindow              = user32.NewProc("DestroyWindow")
	procShowWindow                 = user32.NewProc("ShowWindow")
	procSetWindowPos               = user32.NewProc("SetWindowPos")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procInvalidateRect             = user32.NewProc("InvalidateRect")
	procBeginPaint                 = user32.NewProc("BeginPaint")
	procEndPaint                   = user32.NewProc("EndPaint")
	procGetClientRect              = user32.NewProc("GetClientRect")
	procFillRect                   = user32.NewProc("FillRect")
	procSetTimer                   = user32.NewProc("SetTimer")
	procKillTimer                  = user32.NewProc("KillTimer")
	procPostQuitMessage            = user32.NewProc("PostQuitMessage")
	procPeekMessageW               = user32.NewProc("PeekMessageW")
	procTranslateMessage           = user32.NewProc("TranslateMessage")
	procDispatchMessageW           = user32.NewProc("DispatchMessageW")
	procMsgWaitForMultipleObjects  = user32.NewProc("MsgWaitForMultipleObjects")
	procLoadCursorW                = user32.NewProc("LoadCursorW")

	procCreateSolidBrush = gdi32.NewProc("CreateSolidBrush")
	procDeleteObject     = gdi32.NewProc("DeleteObject")
	procCreateFontW      = gdi32.NewProc("CreateFontW")
	procSelectObject     = gdi32.NewProc("SelectObject")
	procSetBkMode        = gdi32.NewProc("SetBkMode")
	procSetTextColor     = gdi32.NewProc("SetTextColor")
	procTextOutW         = gdi32.NewProc("TextOutW")
)

type wndClassW struct {
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     windows.Handle
	HIcon         windows.Handle
	HCursor       windows.Handle
	HbrBackground windows.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
}

type winPoint struct {
	X, Y int32
}

type winMsg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      winPoint
}

type winRect struct {
	Left, Top, Right, Bottom int32
}

type paintStruct struct {
	Hdc         uintptr
	FErase      int32
	RcPaint     winRect
	FRestore    int32
	FIncUpdate  int32
	RgbReserved [32]byte
}

// One overlay window per process; the window procedure reaches it here.
// The callback is created once, Win32 callbacks are never released.
var (
	activeMu sync.Mutex
	active   *windowSurface

	wndProcCallback = windows.NewCallback(wndProc)
)

type windowSurface struct {
	queue *monitor.Queue
	cmds  chan func()
	done  chan struct{}
	hwnd  uintptr

	mu         sync.Mutex
	appearance Appearance
	text       string
	frame      monitor.Rect
	scale      float64
}

// New creates the layered clock window on its own locked OS thread and
// starts its message loop.
func New(q *monitor.Queue) (Surface, error) {
	w := &windowSurface{
		queue: q,
		cmds:  make(chan func(), 16),
		done:  make(chan struct{}),
		scale: 1.0,
	}

	ready := make(chan error, 1)
	go w.run(ready)
	if err := <-ready; err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrPresentationUnavailable)
	}
	return w, nil
}

func (w *windowSurface) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	activeMu.Lock()
	active = w
	activeMu.Unlock()
	defer func() {
		activeMu.Lock()
		active = nil
		activeMu.Unlock()
		close(w.done)
	}()

	hwnd, err := w.createWindow()
	if err != nil {
		ready <- err
		return
	}
	w.hwnd = hwnd

	w.applyLayered()
	procSetTimer.Call(hwnd, tickTimerID, tickMillis, 0)
	ready <- nil

	var m winMsg
	for {
		select {
		case f := <-w.cmds:
			f()
			continue
		default:
		}

		for {
			r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, _PM_REMOVE)
			if r == 0 {
				break
			}
			if m.Message == _WM_QUIT {
				return
			}
			procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
			procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		}

		// Sleep until a message arrives, but cap the wait so posted
		// commands are picked up promptly.
		procMsgWaitForMultipleObjects.Call(0, 0, 0, 50, _QS_ALLINPUT)
	}
}

func (w *windowSurface) createWindow() (uintptr, error) {
	var hinst windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &hinst); err != nil {
		return 0, err
	}

	clsName, err := windows.UTF16PtrFromString(className)
	if err != nil {
		return 0, err
	}
	title, err := windows.UTF16PtrFromString(windowTitle)
	if err != nil {
		return 0, err
	}

	cursor, _, _ := procLoadCursorW.Call(0, _IDC_ARROW)
	wc := wndClassW{
		LpfnWndProc:   wndProcCallback,
		HInstance:     hinst,
		HCursor:       windows.Handle(cursor),
		LpszClassName: clsName,
	}
	procRegisterClassW.Call(uintptr(unsafe.Pointer(&wc)))

	exStyle := uintptr(_WS_EX_TOPMOST | _WS_EX_TRANSPARENT | _WS_EX_LAYERED | _WS_EX_TOOLWINDOW)
	hwnd, _, callErr := procCreateWindowExW.Call(
		exStyle,
		uintptr(unsafe.Pointer(clsName)),
		uintptr(unsafe.Pointer(title)),
		_WS_POPUP,
		0, 0, 100, 40,
		0, 0, uintptr(hinst), 0,
	)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %v", callErr)
	}
	return hwnd, nil
}

// applyLayered re-applies the color key and alpha. Window thread only.
func (w *windowSurface) applyLayered() {
	w.mu.Lock()
	alpha := alphaByte(w.appearance.Opacity)
	w.mu.Unlock()
	procSetLayeredWindowAttributes.Call(w.hwnd, uintptr(colorKey), uintptr(alpha), _LWA_COLORKEY|_LWA_ALPHA)
}

// applyFrame re-asserts topmost at the stored frame. Window thread only.
func (w *windowSurface) applyFrame() {
	w.mu.Lock()
	f := w.frame
	w.mu.Unlock()
	procSetWindowPos.Call(w.hwnd, _HWND_TOPMOST,
		uintptr(f.X), uintptr(f.Y), uintptr(f.W), uintptr(f.H), _SWP_NOACTIVATE)
}

func (w *windowSurface) invalidate() {
	procInvalidateRect.Call(w.hwnd, 0, 1)
}

func (w *windowSurface) post(f func()) {
	select {
	case w.cmds <- f:
	case <-w.done:
	}
}

func (w *windowSurface) Show() error {
	select {
	case <-w.done:
		return ErrPresentationUnavailable
	default:
	}
	w.post(func() {
		w.applyLayered()
		w.applyFrame()
		procShowWindow.Call(w.hwnd, _SW_SHOWNOACTIVATE)
	})
	return nil
}

func (w *windowSurface) Hide() {
	w.post(func() {
		procShowWindow.Call(w.hwnd, _SW_HIDE)
	})
}

func (w *windowSurface) SetFrame(r monitor.Rect, scale float64) {
	w.mu.Lock()
	w.frame = r
	w.scale = scale
	w.mu.Unlock()
	w.post(func() {
		w.applyFrame()
		w.invalidate()
	})
}

func (w *windowSurface) SetAppearance(a Appearance) {
	w.mu.Lock()
	w.appearance = a
	w.mu.Unlock()
	w.post(func() {
		w.applyLayered()
		w.invalidate()
	})
}

func (w *windowSurface) SetText(s string) {
	w.mu.Lock()
	w.text = s
	w.mu.Unlock()
	w.post(w.invalidate)
}

func (w *windowSurface) Close() {
	w.post(func() {
		procDestroyWindow.Call(w.hwnd)
	})
	<-w.done
}

func wndProc(hwnd, msg, wparam, lparam uintptr) uintptr {
	activeMu.Lock()
	w := active
	activeMu.Unlock()

	switch msg {
	case _WM_PAINT:
		if w != nil {
			w.paint(hwnd)
			return 0
		}
	case _WM_TIMER:
		if w != nil {
			w.applyLayered()
			w.applyFrame()
			w.invalidate()
			return 0
		}
	case _WM_DISPLAYCHANGE:
		if w != nil {
			w.queue.Push(monitor.Change{Kind: monitor.DisplayChanged})
			return 0
		}
	case _WM_DPICHANGED:
		if w != nil {
			w.queue.Push(monitor.Change{Kind: monitor.DPIChanged})
			return 0
		}
	case _WM_DESTROY:
		procKillTimer.Call(hwnd, tickTimerID)
		procPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wparam, lparam)
	return ret
}

func (w *windowSurface) paint(hwnd uintptr) {
	w.mu.Lock()
	a := w.appearance
	text := w.text
	scale := w.scale
	w.mu.Unlock()

	var ps paintStruct
	hdc, _, _ := procBeginPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer procEndPaint.Call(hwnd, uintptr(unsafe.Pointer(&ps)))

	// Everything painted in the key color becomes transparent.
	var rc winRect
	procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&rc)))
	keyBrush, _, _ := procCreateSolidBrush.Call(uintptr(colorKey))
	procFillRect.Call(hdc, uintptr(unsafe.Pointer(&rc)), keyBrush)
	procDeleteObject.Call(keyBrush)

	if text == "" {
		return
	}
	wide, err := windows.UTF16FromString(text)
	if err != nil {
		return
	}
	wide = wide[:len(wide)-1] // drop NUL, TextOutW takes a length

	fontPx := int(float64(a.FontSize)*scale + 0.5)
	face, _ := windows.UTF16PtrFromString("Segoe UI")
	font, _, _ := procCreateFontW.Call(
		uintptr(fontPx), 0, 0, 0,
		_FW_BOLD, 0, 0, 0,
		_DEFAULT_CHARSET, _OUT_TT_PRECIS, _CLIP_DEFAULT_PRECIS,
		_CLEARTYPE_QUALITY, _FF_SWISS,
		uintptr(unsafe.Pointer(face)),
	)
	oldFont, _, _ := procSelectObject.Call(hdc, font)
	procSetBkMode.Call(hdc, _TRANSPARENT_BK)

	tx := int(12.0*scale + 0.5)
	ty := int(8.0*scale + 0.5)
	textCr := guardColorKey(ColorRef(a.TextColor))
	accentCr := guardColorKey(ColorRef(a.AccentColor))

	textOut := func(x, y int, cr uint32) {
		procSetTextColor.Call(hdc, uintptr(cr))
		procTextOutW.Call(hdc, uintptr(x), uintptr(y),
			uintptr(unsafe.Pointer(&wide[0])), uintptr(len(wide)))
	}

	switch a.Style {
	case config.StyleOutline:
		offsets := [8][2]int{
			{-1, -1}, {0, -1}, {1, -1},
			{-1, 0}, {1, 0},
			{-1, 1}, {0, 1}, {1, 1},
		}
		for _, o := range offsets {
			textOut(tx+o[0], ty+o[1], accentCr)
		}
		textOut(tx, ty, textCr)
	case config.StyleShadow:
		textOut(tx+2, ty+2, accentCr)
		textOut(tx, ty, textCr)
	default:
		textOut(tx, ty, textCr)
	}

	procSelectObject.Call(hdc, oldFont)
	procDeleteObject.Call(font)
}
