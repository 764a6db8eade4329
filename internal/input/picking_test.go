package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePass struct {
	height  int
	code    uint8
	began   int
	cleared int
	drawn   []uint8
	sampleX int
	sampleY int
}

func (p *fakePass) Begin()              { p.began++ }
func (p *fakePass) Draw(_ int, c uint8) { p.drawn = append(p.drawn, c) }
func (p *fakePass) Height() int         { return p.height }
func (p *fakePass) Clear()              { p.cleared++ }
func (p *fakePass) Sample(x, y int) uint8 {
	p.sampleX, p.sampleY = x, y
	return p.code
}

type hoverLog struct {
	events []string
}

func (h *hoverLog) bind(m *Manager, id EntityID, name string) {
	m.AddEvent(id, MouseOver, "over", func() { h.events = append(h.events, "over:"+name) })
	m.AddEvent(id, MouseOut, "out", func() { h.events = append(h.events, "out:"+name) })
}

func TestPickDrawsEveryTargetWithOneBasedCodes(t *testing.T) {
	m := NewManager()
	pass := &fakePass{height: 600}

	m.Pick([]EntityID{1, 2, 3}, pass)

	assert.Equal(t, []uint8{1, 2, 3}, pass.drawn)
	assert.Equal(t, 1, pass.began)
	assert.Equal(t, 1, pass.cleared)
}

func TestPickFlipsCursorY(t *testing.T) {
	m := NewManager()
	m.OnMouseButton(MouseLeft, false, 40, 100)
	pass := &fakePass{height: 600}

	m.Pick(nil, pass)

	assert.Equal(t, 40, pass.sampleX)
	assert.Equal(t, 499, pass.sampleY)
}

func TestPickTopRowSamplesLastBufferRow(t *testing.T) {
	m := NewManager()
	m.OnMouseMoved(0, 0)
	pass := &fakePass{height: 600}

	m.Pick(nil, pass)

	assert.Equal(t, 599, pass.sampleY)
}

func TestPickZeroMeansNoEntity(t *testing.T) {
	for _, n := range []int{0, 1, 10, 300} {
		m := NewManager()
		targets := make([]EntityID, n)
		for i := range targets {
			targets[i] = EntityID(i + 1)
		}
		m.Pick(targets, &fakePass{height: 10, code: 0})
		assert.Equal(t, None, m.Hovered(), "entities=%d", n)
	}
}

func TestPickCodeMapsToIndexMinusOne(t *testing.T) {
	m := NewManager()
	targets := []EntityID{7, 8, 9}

	for v := 1; v <= len(targets); v++ {
		m.Pick(targets, &fakePass{height: 10, code: uint8(v)})
		assert.Equal(t, targets[v-1], m.Hovered())
	}
}

func TestPickCodeBeyondTargetsIsIgnored(t *testing.T) {
	m := NewManager()
	targets := []EntityID{1, 2}
	m.Pick(targets, &fakePass{height: 10, code: 2})
	require.Equal(t, EntityID(2), m.Hovered())

	m.Pick(targets, &fakePass{height: 10, code: 9})
	assert.Equal(t, EntityID(2), m.Hovered())
}

func TestHoverFiresOnlyOnTransitions(t *testing.T) {
	m := NewManager()
	log := &hoverLog{}
	log.bind(m, 1, "a")
	targets := []EntityID{1}

	for i := 0; i < 5; i++ {
		m.Pick(targets, &fakePass{height: 10, code: 1})
	}
	assert.Equal(t, []string{"over:a"}, log.events)

	for i := 0; i < 3; i++ {
		m.Pick(targets, &fakePass{height: 10, code: 0})
	}
	assert.Equal(t, []string{"over:a", "out:a"}, log.events)
}

func TestHoverSwitchExitsOldBeforeEnteringNew(t *testing.T) {
	m := NewManager()
	log := &hoverLog{}
	log.bind(m, 1, "a")
	log.bind(m, 2, "b")
	targets := []EntityID{1, 2}

	m.Pick(targets, &fakePass{height: 10, code: 1})
	m.Pick(targets, &fakePass{height: 10, code: 2})

	assert.Equal(t, []string{"over:a", "out:a", "over:b"}, log.events)
	assert.Equal(t, EntityID(2), m.Hovered())
}

func TestHoveredChangesAfterHoverCallbacks(t *testing.T) {
	m := NewManager()
	targets := []EntityID{1, 2}
	var duringOut, duringOver []EntityID
	m.AddEvent(1, MouseOut, "out", func() { duringOut = append(duringOut, m.Hovered()) })
	m.AddEvent(2, MouseOver, "over", func() { duringOver = append(duringOver, m.Hovered()) })

	m.Pick(targets, &fakePass{height: 10, code: 1})
	m.Pick(targets, &fakePass{height: 10, code: 2})

	assert.Equal(t, []EntityID{1}, duringOut)
	assert.Equal(t, []EntityID{1}, duringOver)
	assert.Equal(t, EntityID(2), m.Hovered())
}

func TestHoverScenarioSecondOfFour(t *testing.T) {
	m := NewManager()
	log := &hoverLog{}
	// Combined list [X, A, B, C]; only A and B listen.
	log.bind(m, 2, "A")
	log.bind(m, 3, "B")
	targets := []EntityID{1, 2, 3, 4}

	// Colour code 3 is index 2, which is B.
	m.Pick(targets, &fakePass{height: 10, code: 3})
	assert.Equal(t, EntityID(3), m.Hovered())

	m.Pick(targets, &fakePass{height: 10, code: 0})
	assert.Equal(t, None, m.Hovered())
	assert.Equal(t, []string{"over:B", "out:B"}, log.events)
}

func TestColourCodeWrapsPastLimit(t *testing.T) {
	assert.Equal(t, uint8(1), ColourCode(0))
	assert.Equal(t, uint8(255), ColourCode(254))
	assert.Equal(t, uint8(0), ColourCode(MaxPickable))
}
