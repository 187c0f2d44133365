package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/geom"
)

// Matrix converts m to raylib's layout (M0 M4 M8 M12 is the first row).
func Matrix(m geom.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0][0], M4: m[0][1], M8: m[0][2], M12: m[0][3],
		M1: m[1][0], M5: m[1][1], M9: m[1][2], M13: m[1][3],
		M2: m[2][0], M6: m[2][1], M10: m[2][2], M14: m[2][3],
		M3: m[3][0], M7: m[3][1], M11: m[3][2], M15: m[3][3],
	}
}

func vec(v geom.Vec3) rl.Vector3 { return rl.NewVector3(v[0], v[1], v[2]) }

func fromVec(v rl.Vector3) geom.Vec3 { return geom.V3(v.X, v.Y, v.Z) }

// Color converts c to an opaque raylib color.
func Color(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

// CameraOf returns the picking camera for c on a viewport with the given aspect ratio.
func CameraOf(c rl.Camera3D, aspect float32) geom.Camera {
	return geom.Camera{
		Position: fromVec(c.Position),
		Target:   fromVec(c.Target),
		Up:       fromVec(c.Up),
		Fovy:     c.Fovy,
		Aspect:   aspect,
	}
}
