//go:build !windows

package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// setDarkTitleBar is a no-op outside Windows; the desktop theme decides.
func setDarkTitleBar(*glfw.Window) {}
