//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"SceneViewer/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	dwmwaUseImmersiveDarkMode = 20
	dwmwaBorderColor          = 34
	dwmwaCaptionColor         = 35
)

// setDarkTitleBar asks the desktop window manager for a dark caption.
func setDarkTitleBar(window *glfw.Window) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}
	p := unsafe.Pointer(hwnd)
	setWindowAttribute(p, dwmwaUseImmersiveDarkMode, 1)
	setWindowAttribute(p, dwmwaBorderColor, 0x00000000)
	setWindowAttribute(p, dwmwaCaptionColor, 0x00202020)
}

func setWindowAttribute(hwnd unsafe.Pointer, attribute uintptr, value uint32) {
	ret, _, _ := procDwmSetWindowAttribute.Call(
		uintptr(hwnd),
		attribute,
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
	if ret != 0 {
		logger.Log.Debug("DwmSetWindowAttribute failed",
			zap.Uint64("attribute", uint64(attribute)),
			zap.Uint64("hresult", uint64(ret)))
	}
}
