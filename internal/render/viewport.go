package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Viewport holds the editor camera and the display graph: the entities currently drawn. It
// implements scene.DisplayGraph and the session's grid toggle.
type Viewport struct {
	Camera      rl.Camera3D
	GridVisible bool

	orbit   Orbit
	members []entity.Entity
	meshes  *meshCache
	gizmo   *Gizmo
}

// NewViewport returns a viewport looking at the origin from (10, 10, 10) with the grid shown.
// gizmo may be nil.
func NewViewport(gizmo *Gizmo) *Viewport {
	v := &Viewport{
		GridVisible: true,
		orbit:       OrbitFrom(geom.V3(10, 10, 10), geom.Vec3{}),
		meshes:      newMeshCache(),
		gizmo:       gizmo,
	}
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective
	v.syncCamera()
	return v
}

// Add puts e in the display graph. Adding a member twice is a no-op.
func (v *Viewport) Add(e entity.Entity) {
	for _, m := range v.members {
		if m == e {
			return
		}
	}
	v.members = append(v.members, e)
}

// Remove takes e out of the display graph.
func (v *Viewport) Remove(e entity.Entity) {
	for i, m := range v.members {
		if m == e {
			v.members = append(v.members[:i], v.members[i+1:]...)
			if v.meshes != nil {
				v.meshes.Release(e, v.members)
			}
			return
		}
	}
}

// Len returns the number of displayed entities.
func (v *Viewport) Len() int { return len(v.members) }

func (v *Viewport) SetGridVisible(visible bool) { v.GridVisible = visible }

// PickCamera returns the camera used to resolve pointer rays on the current screen.
func (v *Viewport) PickCamera() geom.Camera {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	aspect := float32(1)
	if h > 0 {
		aspect = w / h
	}
	return CameraOf(v.Camera, aspect)
}

// Update moves the camera: right drag orbits, middle drag pans and the wheel zooms. Pass
// navigate false while another control owns the pointer.
func (v *Viewport) Update(navigate bool) {
	if !navigate {
		return
	}
	d := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonRight):
		v.orbit.Rotate(d.X, d.Y)
	case rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		v.orbit.Pan(d.X, d.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.orbit.Zoom(wheel)
	}
	v.syncCamera()
}

func (v *Viewport) syncCamera() {
	v.Camera.Position = vec(v.orbit.Position())
	v.Camera.Target = vec(v.orbit.Target)
}

// Draw renders the grid, every member and the gizmo.
func (v *Viewport) Draw() {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawEditorGrid()
	}
	v.meshes.SetView(v.orbit.Position())
	for _, e := range v.members {
		v.meshes.Draw(e)
	}
	if v.gizmo != nil {
		v.gizmo.Draw()
	}
	rl.EndMode3D()
}

// Unload releases GPU resources. Call before the window closes.
func (v *Viewport) Unload() {
	v.meshes.Unload()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and RGB axis lines.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
	for i, c := range axisColors {
		start, end = rl.Vector3{}, rl.Vector3{}
		switch i {
		case 0:
			start.X, end.X = -gridExtent, gridExtent
		case 1:
			start.Y, end.Y = -gridExtent, gridExtent
		case 2:
			start.Z, end.Z = -gridExtent, gridExtent
		}
		rl.DrawLine3D(start, end, rl.Fade(c, axisLineAlpha/255.0))
	}
}
