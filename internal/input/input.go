package input

import "fmt"

// Device identifies what produced a trigger.
type Device int

const (
	Keyboard Device = iota
	Mouse
)

// Phase is the edge of a trigger binding.
type Phase int

const (
	Released Phase = iota
	Pressed
)

func (p Phase) String() string {
	if p == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton enumerates the bindable buttons.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Axis enumerates the continuous mouse axes.
type Axis int

const (
	MouseX Axis = iota
	MouseY
)

func (a Axis) String() string {
	if a == MouseY {
		return "mouse-y"
	}
	return "mouse-x"
}

// Event is an entity specific hover transition.
type Event int

const (
	MouseOver Event = iota
	MouseOut
)

func (e Event) String() string {
	if e == MouseOut {
		return "mouse-out"
	}
	return "mouse-over"
}

// Key is a keyboard key expressed as its lower case character, e.g. 'w' or ' '.
type Key rune

// EntityID addresses an entity in event bindings. Zero means no entity.
type EntityID uint32

// None is the zero EntityID.
const None EntityID = 0

// Source is anything that can fire a trigger: a key or a mouse button.
type Source struct {
	Device Device
	Code   int
}

// KeySource returns the trigger source for a keyboard key.
func KeySource(k Key) Source {
	return Source{Device: Keyboard, Code: int(k)}
}

// ButtonSource returns the trigger source for a mouse button.
func ButtonSource(b MouseButton) Source {
	return Source{Device: Mouse, Code: int(b)}
}

// KeySources maps keys to sources, for bindings shared by several keys.
func KeySources(keys ...Key) []Source {
	sources := make([]Source, len(keys))
	for i, k := range keys {
		sources[i] = KeySource(k)
	}
	return sources
}

func (s Source) String() string {
	if s.Device == Mouse {
		switch MouseButton(s.Code) {
		case MouseLeft:
			return "mouse-left"
		case MouseRight:
			return "mouse-right"
		case MouseMiddle:
			return "mouse-middle"
		}
		return fmt.Sprintf("mouse-%d", s.Code)
	}
	if s.Code == ' ' {
		return "key-space"
	}
	return fmt.Sprintf("key-%c", rune(s.Code))
}
