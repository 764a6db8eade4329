package input

import (
	"SceneViewer/internal/logger"

	"go.uber.org/zap"
)

// MaxPickable is the number of entities the single 8-bit channel of the
// selection buffer can tell apart. Entities past it alias lower indices.
const MaxPickable = 255

// SelectionPass is the off-screen colour-coded render used for picking.
type SelectionPass interface {
	// Begin prepares the target and binds the selection shader.
	Begin()
	// Draw renders the entity at index i of the pick list with code as its colour.
	Draw(i int, code uint8)
	// Height is the viewport height, used to flip the cursor into buffer space.
	Height() int
	// Sample reads the colour code at buffer coordinates (x, y).
	Sample(x, y int) uint8
	// Clear wipes the target so the normal pass starts clean.
	Clear()
}

// ColourCode returns the selection colour for the entity at index i.
func ColourCode(i int) uint8 {
	return uint8(i + 1)
}

// Pick renders targets into the selection pass, samples the pixel under the
// cursor and raises hover transitions. Call once per frame, after the camera
// has been updated and before entities are.
func (m *Manager) Pick(targets []EntityID, pass SelectionPass) {
	// A stationary cursor must not replay the last motion delta.
	m.lastCursor = m.cursor

	if len(targets) > MaxPickable && !m.warnedAlias {
		logger.Log.Warn("more entities than the selection buffer can encode; picking will alias",
			zap.Int("entities", len(targets)),
			zap.Int("max", MaxPickable))
		m.warnedAlias = true
	}

	pass.Begin()
	for i := range targets {
		pass.Draw(i, ColourCode(i))
	}
	// Screen space grows downwards, buffer space upwards.
	code := pass.Sample(int(m.cursor.X()), pass.Height()-1-int(m.cursor.Y()))
	pass.Clear()

	m.resolveHover(code, targets)
}

// resolveHover applies the sampled colour code to the hover state. Only
// transitions fire events.
func (m *Manager) resolveHover(code uint8, targets []EntityID) {
	if code == 0 {
		if m.hovered != None {
			m.fireEvents(m.hovered, MouseOut)
		}
		m.hovered = None
		return
	}

	index := int(code) - 1
	if index >= len(targets) {
		return
	}
	next := targets[index]
	if next == m.hovered {
		return
	}
	if m.hovered != None {
		m.fireEvents(m.hovered, MouseOut)
	}
	if next != None {
		m.fireEvents(next, MouseOver)
	}
	m.hovered = next
}
