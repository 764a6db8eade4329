package input

import (
	"SceneViewer/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultMouseSensitivity scales raw cursor deltas before axis dispatch.
const DefaultMouseSensitivity float32 = 0.1

// TriggerBinding fires on a press or release of Source.
type TriggerBinding struct {
	Source Source
	Phase  Phase
	Action string
	Fire   func()
}

// AxisBinding receives the per-event delta of Axis.
type AxisBinding struct {
	Axis   Axis
	Action string
	Fire   func(float32)
}

// EventBinding fires when Target gains or loses the cursor.
type EventBinding struct {
	Target EntityID
	Event  Event
	Action string
	Fire   func()
}

type triggerKey struct {
	source Source
	phase  Phase
}

type eventKey struct {
	target EntityID
	event  Event
}

// Manager owns every input binding and translates device callbacks into
// trigger, axis and hover dispatch. All methods must be called from the
// thread that runs the frame loop.
type Manager struct {
	MouseSensitivity float32

	triggers map[triggerKey][]TriggerBinding
	axes     map[Axis][]AxisBinding
	events   map[eventKey][]EventBinding

	cursor     mgl32.Vec2
	lastCursor mgl32.Vec2

	hovered     EntityID
	warnedAlias bool
}

// NewManager returns a manager with empty binding tables.
func NewManager() *Manager {
	return &Manager{
		MouseSensitivity: DefaultMouseSensitivity,
		triggers:         make(map[triggerKey][]TriggerBinding),
		axes:             make(map[Axis][]AxisBinding),
		events:           make(map[eventKey][]EventBinding),
	}
}

// AddTrigger appends a trigger binding for source in the given phase.
func (m *Manager) AddTrigger(source Source, phase Phase, action string, fire func()) {
	k := triggerKey{source, phase}
	m.triggers[k] = append(m.triggers[k], TriggerBinding{Source: source, Phase: phase, Action: action, Fire: fire})
}

// AddTriggers binds the same callback to several sources.
func (m *Manager) AddTriggers(sources []Source, phase Phase, action string, fire func()) {
	for _, s := range sources {
		m.AddTrigger(s, phase, action, fire)
	}
}

// AddAxis appends a value binding for a mouse axis.
func (m *Manager) AddAxis(axis Axis, action string, fire func(float32)) {
	m.axes[axis] = append(m.axes[axis], AxisBinding{Axis: axis, Action: action, Fire: fire})
}

// AddEvent appends a hover binding for target.
func (m *Manager) AddEvent(target EntityID, event Event, action string, fire func()) {
	k := eventKey{target, event}
	m.events[k] = append(m.events[k], EventBinding{Target: target, Event: event, Action: action, Fire: fire})
}

// Triggers returns the bindings registered for source and phase, in order.
func (m *Manager) Triggers(source Source, phase Phase) []TriggerBinding {
	return m.triggers[triggerKey{source, phase}]
}

// Cursor returns the last known cursor position in window coordinates.
func (m *Manager) Cursor() mgl32.Vec2 {
	return m.cursor
}

// Hovered returns the entity currently under the cursor, or None.
func (m *Manager) Hovered() EntityID {
	return m.hovered
}

// OnMouseButton handles a button press or release at (x, y).
func (m *Manager) OnMouseButton(button MouseButton, pressed bool, x, y float32) {
	m.cursor = mgl32.Vec2{x, y}
	m.lastCursor = m.cursor

	phase := Released
	if pressed {
		phase = Pressed
	}
	m.fireTriggers(ButtonSource(button), phase)
}

// OnMouseMoved handles cursor motion and feeds the scaled delta to axis
// bindings, X before Y.
func (m *Manager) OnMouseMoved(x, y float32) {
	m.lastCursor = m.cursor
	m.cursor = mgl32.Vec2{x, y}
	delta := m.cursor.Sub(m.lastCursor).Mul(m.MouseSensitivity)

	for _, b := range m.axes[MouseX] {
		b.Fire(delta.X())
	}
	for _, b := range m.axes[MouseY] {
		b.Fire(delta.Y())
	}
}

// OnKeyDown fires the pressed bindings of key.
func (m *Manager) OnKeyDown(key Key) {
	m.fireTriggers(KeySource(key), Pressed)
}

// OnKeyUp fires the released bindings of key.
func (m *Manager) OnKeyUp(key Key) {
	m.fireTriggers(KeySource(key), Released)
}

func (m *Manager) fireTriggers(source Source, phase Phase) {
	bindings := m.triggers[triggerKey{source, phase}]
	for _, b := range bindings {
		logger.Log.Debug("trigger",
			zap.Stringer("source", source),
			zap.Stringer("phase", phase),
			zap.String("action", b.Action))
		b.Fire()
	}
}

func (m *Manager) fireEvents(target EntityID, event Event) {
	for _, b := range m.events[eventKey{target, event}] {
		logger.Log.Debug("hover",
			zap.Uint32("entity", uint32(target)),
			zap.Stringer("event", event),
			zap.String("action", b.Action))
		b.Fire()
	}
}
