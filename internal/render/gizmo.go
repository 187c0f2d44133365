package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/entity"
	"scene-editor/internal/scene"
)

const (
	gizmoLength    = 1.5
	gizmoTip       = 0.08
	translateRate  = 0.02
	rotateRate     = 0.01
	scaleRate      = 0.005
	gizmoRingWidth = 0.9
)

var axisColors = [3]rl.Color{
	rl.NewColor(230, 70, 70, 255),
	rl.NewColor(70, 220, 70, 255),
	rl.NewColor(70, 110, 240, 255),
}

var axisKeys = [3]int32{rl.KeyX, rl.KeyY, rl.KeyZ}

// Gizmo is the manipulation handle. Hold X, Y or Z and drag with the left button to edit the
// attached entity along that axis in the current mode.
type Gizmo struct {
	target entity.Entity
	mode   scene.HandleMode
	axis   int
	active bool
}

// NewGizmo returns a detached gizmo in translate mode.
func NewGizmo() *Gizmo {
	return &Gizmo{mode: scene.Translate, axis: -1}
}

func (g *Gizmo) Attach(e entity.Entity)     { g.target = e }
func (g *Gizmo) Detach()                    { g.target, g.active = nil, false }
func (g *Gizmo) SetMode(m scene.HandleMode) { g.mode = m }
func (g *Gizmo) Mode() scene.HandleMode     { return g.mode }
func (g *Gizmo) Target() entity.Entity      { return g.target }

// Active reports whether a drag is in progress. Pointer picking must be suppressed while it is.
func (g *Gizmo) Active() bool { return g.active }

// Update reads input and applies this frame's drag. Call once per frame before picking.
func (g *Gizmo) Update() {
	g.axis = -1
	for i, k := range axisKeys {
		if rl.IsKeyDown(k) {
			g.axis = i
			break
		}
	}
	g.active = g.target != nil && g.axis >= 0 && rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if !g.active {
		return
	}
	d := rl.GetMouseDelta()
	scene.Drag(g.target.Transform(), g.mode, g.axis, (d.X-d.Y)*g.rate())
}

func (g *Gizmo) rate() float32 {
	switch g.mode {
	case scene.Rotate:
		return rotateRate
	case scene.Scale:
		return scaleRate
	}
	return translateRate
}

// Draw draws the handle at the target's origin. Must be called between BeginMode3D and EndMode3D.
func (g *Gizmo) Draw() {
	if g.target == nil {
		return
	}
	origin := vec(g.target.Transform().Position)
	for i, c := range axisColors {
		if g.axis >= 0 && g.axis != i {
			c = rl.Fade(c, 0.35)
		}
		var dir rl.Vector3
		switch i {
		case 0:
			dir.X = gizmoLength
		case 1:
			dir.Y = gizmoLength
		case 2:
			dir.Z = gizmoLength
		}
		tip := rl.Vector3Add(origin, dir)
		switch g.mode {
		case scene.Rotate:
			// DrawCircle3D draws in XY; turn the ring so its normal is the axis.
			turn, angle := rl.NewVector3(0, 1, 0), float32(90)
			switch i {
			case 1:
				turn = rl.NewVector3(1, 0, 0)
			case 2:
				angle = 0
			}
			rl.DrawCircle3D(origin, gizmoRingWidth, turn, angle, c)
		case scene.Scale:
			rl.DrawLine3D(origin, tip, c)
			rl.DrawCube(tip, gizmoTip*2, gizmoTip*2, gizmoTip*2, c)
		default:
			rl.DrawLine3D(origin, tip, c)
			rl.DrawSphere(tip, gizmoTip, c)
		}
	}
}
