package scene

import "scene-editor/internal/entity"

// MinScale keeps a dragged scale component from collapsing to zero or flipping sign.
const MinScale = 0.01

// Drag applies one handle drag step along axis (0 X, 1 Y, 2 Z) to t. For Translate amount is a
// distance, for Rotate an angle in radians and for Scale a relative factor (0.1 grows by 10%).
// Out-of-range axes are ignored.
func Drag(t *entity.Transform, m HandleMode, axis int, amount float32) {
	if axis < 0 || axis > 2 {
		return
	}
	switch m {
	case Translate:
		t.Position[axis] += amount
	case Rotate:
		t.Rotation[axis] += amount
	case Scale:
		s := t.Scale[axis] * (1 + amount)
		if s < MinScale {
			s = MinScale
		}
		t.Scale[axis] = s
	}
}
