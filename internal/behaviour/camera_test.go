package behaviour

import (
	"testing"

	"SceneViewer/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	host := newTestHost()
	cam := host.camera

	assert.Equal(t, input.None, cam.Handle())
	assert.Equal(t, float32(70), cam.FOV)
	assert.Equal(t, float32(80), cam.MaxPitch)
	assert.False(t, cam.Looking())
	assert.Equal(t, float32(0), cam.Projection.At(3, 3))
	assert.Equal(t, float32(-1), cam.Projection.At(3, 2))
	assert.True(t, mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}).ApproxEqual(cam.View))
}

func TestCameraFliesAlongForward(t *testing.T) {
	host := newTestHost()
	cam := host.camera

	host.input.OnKeyDown('w')
	cam.Update(1)

	assert.True(t, near(cam.Position(), mgl32.Vec3{0, 0, -3}), "got %v", cam.Position())

	host.input.OnKeyUp('w')
	cam.Update(1)

	assert.True(t, near(cam.Position(), mgl32.Vec3{0, 0, -3}))
}

func TestCameraFlyKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want mgl32.Vec3
	}{
		{'s', mgl32.Vec3{0, 0, 3}},
		{'a', mgl32.Vec3{-3, 0, 0}},
		{'d', mgl32.Vec3{3, 0, 0}},
		{' ', mgl32.Vec3{0, 3, 0}},
		{'e', mgl32.Vec3{0, 3, 0}},
		{'x', mgl32.Vec3{0, -3, 0}},
		{'q', mgl32.Vec3{0, -3, 0}},
	}
	for _, tt := range tests {
		t.Run(input.KeySource(tt.key).String(), func(t *testing.T) {
			host := newTestHost()
			host.input.OnKeyDown(tt.key)
			host.camera.Update(1)
			assert.True(t, near(host.camera.Position(), tt.want), "got %v", host.camera.Position())
		})
	}
}

func TestCameraUpdateRefreshesView(t *testing.T) {
	host := newTestHost()
	cam := host.camera

	host.input.OnKeyDown('d')
	cam.Update(1)

	pos := cam.Position()
	assert.Equal(t, mgl32.LookAtV(pos, pos.Add(cam.ForwardVector()), cam.UpVector()), cam.View)
}

func TestCameraLookRequiresRightMouse(t *testing.T) {
	host := newTestHost()
	cam := host.camera

	host.input.OnMouseMoved(100, 100)
	assert.True(t, sameRotation(mgl32.QuatIdent(), cam.Rotation()))

	host.input.OnMouseButton(input.MouseRight, true, 100, 100)
	assert.True(t, cam.Looking())
	host.input.OnMouseMoved(200, 100)

	// Moving the cursor right turns the camera right.
	assert.Less(t, cam.ForwardVector().X(), float32(0.5))
	assert.Greater(t, cam.ForwardVector().X(), float32(0))

	host.input.OnMouseButton(input.MouseRight, false, 200, 100)
	assert.False(t, cam.Looking())
}

func TestCameraPitchIsClamped(t *testing.T) {
	host := newTestHost()
	cam := host.camera
	host.input.OnMouseButton(input.MouseRight, true, 0, 0)

	cam.LookUp(50)
	cam.LookUp(50)
	assert.Equal(t, float32(80), cam.Pitch())

	cam.LookUp(-200)
	assert.Equal(t, float32(-80), cam.Pitch())

	expected := mgl32.QuatRotate(mgl32.DegToRad(-80), RightVector)
	assert.True(t, sameRotation(expected, cam.Rotation()), "got %v", cam.Rotation())
}

func TestCameraLookNeverRolls(t *testing.T) {
	host := newTestHost()
	cam := host.camera
	host.input.OnMouseButton(input.MouseRight, true, 0, 0)

	cam.LookUp(30)
	cam.LookRight(45)
	cam.LookUp(-10)
	cam.LookRight(-120)

	assert.InDelta(t, 0, cam.RightVector().Y(), eps)
	assert.InDelta(t, 20, cam.Pitch(), eps)
}

func TestCameraLookHooks(t *testing.T) {
	host := newTestHost()
	var started, ended int
	host.camera.OnLookStart = func() { started++ }
	host.camera.OnLookEnd = func() { ended++ }

	host.input.OnMouseButton(input.MouseRight, true, 0, 0)
	host.input.OnMouseButton(input.MouseRight, false, 0, 0)

	assert.Equal(t, 1, started)
	assert.Equal(t, 1, ended)
}

func TestSetLensGuardsZeroHeight(t *testing.T) {
	host := newTestHost()
	cam := host.camera

	cam.SetLens(90, 800, 0, 0.5, 100)

	assert.Equal(t, float32(1), cam.Height)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(90), 800, 0.5, 100), cam.Projection)
}
