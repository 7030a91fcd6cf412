// Package scene holds the viewer's UI state, camera setup and lighting.
// Nothing in this package touches OpenGL; the viewer reads the state and
// matrices when drawing.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DragSensitivity is the rotation in degrees per pixel of mouse motion.
const DragSensitivity = 0.5

var errUnknownView = errors.New("unknown view")

// View is a fixed camera of the control panel window.
type View int

const (
	ViewTop View = iota + 1
	ViewBottom
	ViewLeft
	ViewRight
	ViewPerspective
)

// Views lists all fixed views in menu order.
var Views = [...]View{ViewTop, ViewBottom, ViewLeft, ViewRight, ViewPerspective}

func (v View) String() string {
	switch v {
	case ViewTop:
		return "Top"
	case ViewBottom:
		return "Bottom"
	case ViewLeft:
		return "Left"
	case ViewRight:
		return "Right"
	case ViewPerspective:
		return "Perspective"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Camera returns the eye position and up vector of the view. The camera
// always looks at the origin.
func (v View) Camera() (eye, up mgl32.Vec3, err error) {
	switch v {
	case ViewTop:
		return mgl32.Vec3{0, 6, 0}, mgl32.Vec3{1, 0, 0}, nil
	case ViewBottom:
		return mgl32.Vec3{0, -6, 0}, mgl32.Vec3{1, 0, 0}, nil
	case ViewLeft:
		return mgl32.Vec3{0, 0, -6}, mgl32.Vec3{0, 1, 0}, nil
	case ViewRight:
		return mgl32.Vec3{0, 0, 6}, mgl32.Vec3{0, 1, 0}, nil
	case ViewPerspective:
		return mgl32.Vec3{4, 4, 4}, mgl32.Vec3{0, 1, 0}, nil
	}
	return eye, up, fmt.Errorf("%w %d", errUnknownView, int(v))
}

// State is the mutable UI state shared by both windows.
type State struct {
	// AngleX and AngleY are the drag rotations in degrees of the interactive window.
	AngleX, AngleY float32
	// View is the fixed camera of the control panel.
	View View
	// Color is the solid color used when ShowTexture is false.
	Color ColorPreset
	// ShowTexture selects the porcelain texture over the solid color.
	ShowTexture bool
	// Pitch makes the model also rotate by AngleX. Off, only AngleY applies.
	Pitch bool

	dragging     bool
	lastX, lastY float64
}

// NewState returns the startup state: top view, white and textured.
func NewState() State {
	return State{
		View:        ViewTop,
		Color:       ColorWhite,
		ShowTexture: true,
	}
}

// Press starts a drag at cursor position (x, y).
func (s *State) Press(x, y float64) {
	s.dragging = true
	s.lastX, s.lastY = x, y
}

// Release ends a drag.
func (s *State) Release(x, y float64) {
	s.dragging = false
	s.lastX, s.lastY = x, y
}

// Dragging reports whether a drag is in progress.
func (s *State) Dragging() bool { return s.dragging }

// Drag updates the rotation with the cursor motion since the last event and
// reports whether the state changed. Horizontal motion rotates about Y.
func (s *State) Drag(x, y float64) (changed bool) {
	if !s.dragging {
		return false
	}
	dx, dy := x-s.lastX, y-s.lastY
	s.AngleY += float32(dx) * DragSensitivity
	s.AngleX += float32(dy) * DragSensitivity
	s.lastX, s.lastY = x, y
	return dx != 0 || dy != 0
}

// SelectView changes the control panel camera.
func (s *State) SelectView(v View) error {
	_, _, err := v.Camera()
	if err != nil {
		return err
	}
	s.View = v
	return nil
}

// SelectColor switches to a solid color, disabling the texture.
func (s *State) SelectColor(c ColorPreset) error {
	if _, err := c.RGB(); err != nil {
		return err
	}
	s.Color = c
	s.ShowTexture = false
	return nil
}

// SelectTexture switches back to the porcelain texture.
func (s *State) SelectTexture() {
	s.ShowTexture = true
}

// SurfaceColor is the color the teapot surface is modulated with. White
// when textured so the texture shows unaltered.
func (s *State) SurfaceColor() mgl32.Vec3 {
	if s.ShowTexture {
		return mgl32.Vec3{1, 1, 1}
	}
	rgb, err := s.Color.RGB()
	if err != nil {
		return mgl32.Vec3{1, 1, 1}
	}
	return rgb
}
