package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective projection parameters shared by both windows.
const (
	FieldOfView = 45 // degrees
	Near        = 1
	Far         = 200
)

// InteractiveEye is the camera position of the mouse driven window.
var InteractiveEye = mgl32.Vec3{0, 0, 5}

// Projection returns the perspective projection for a viewport of the given size.
// A degenerate height is treated as a square viewport.
func Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, Near, Far)
}

// ViewMatrix returns the camera matrix looking from eye at the origin.
func ViewMatrix(eye, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, mgl32.Vec3{}, up)
}

// InteractiveView is the camera matrix of the mouse driven window.
func InteractiveView() mgl32.Mat4 {
	return ViewMatrix(InteractiveEye, mgl32.Vec3{0, 1, 0})
}

// PanelView is the camera matrix of the control panel for the current view.
func (s *State) PanelView() (mgl32.Mat4, error) {
	eye, up, err := s.View.Camera()
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return ViewMatrix(eye, up), nil
}

// Model returns the teapot's model matrix from the drag rotation.
// Yaw (AngleY) is applied first, then pitch (AngleX) if enabled.
func (s *State) Model() mgl32.Mat4 {
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(s.AngleY))
	if !s.Pitch {
		return ry
	}
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(s.AngleX))
	return rx.Mul4(ry)
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of modelView.
func NormalMatrix(modelView mgl32.Mat4) mgl32.Mat3 {
	return modelView.Mat3().Inv().Transpose()
}
