package render

import (
	"image"
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
	"scene-editor/internal/scene"
)

func TestMatrixLayout(t *testing.T) {
	m := geom.Compose(geom.V3(1, 2, 3), geom.Euler{}, geom.V3(4, 5, 6))
	r := Matrix(m)
	assert.Equal(t, float32(4), r.M0)
	assert.Equal(t, float32(5), r.M5)
	assert.Equal(t, float32(6), r.M10)
	assert.Equal(t, float32(1), r.M12)
	assert.Equal(t, float32(2), r.M13)
	assert.Equal(t, float32(3), r.M14)
	assert.Equal(t, float32(1), r.M15)
}

func TestCameraOf(t *testing.T) {
	c := rl.Camera3D{
		Position: rl.NewVector3(0, 0, 5),
		Up:       rl.NewVector3(0, 1, 0),
		Fovy:     45,
	}
	gc := CameraOf(c, 2)
	assert.Equal(t, geom.V3(0, 0, 5), gc.Position)
	assert.Equal(t, float32(2), gc.Aspect)

	ray := gc.PointerRay(50, 50, 100, 100)
	assert.InDelta(t, -1, ray.Dir[2], 1e-5)
}

func TestOrbitRoundTrip(t *testing.T) {
	o := OrbitFrom(geom.V3(10, 10, 10), geom.Vec3{})
	p := o.Position()
	for i := range p {
		assert.InDelta(t, 10, p[i], 1e-3)
	}
	assert.InDelta(t, math32.Sqrt(300), o.Distance, 1e-3)
}

func TestOrbitClamps(t *testing.T) {
	o := OrbitFrom(geom.V3(0, 0, 10), geom.Vec3{})
	o.Rotate(0, 1e6)
	assert.Equal(t, float32(maxPitch), o.Pitch)

	o.Zoom(100)
	assert.Equal(t, float32(minDistance), o.Distance)
	o.Zoom(-1e6)
	assert.Equal(t, float32(maxDistance), o.Distance)
}

func TestOrbitPanKeepsOffset(t *testing.T) {
	o := OrbitFrom(geom.V3(0, 0, 10), geom.Vec3{})
	before := o.Position().Sub(o.Target)
	o.Pan(100, 0)
	assert.Less(t, o.Target[0], float32(0))
	after := o.Position().Sub(o.Target)
	for i := range before {
		assert.InDelta(t, before[i], after[i], 1e-4)
	}
}

func TestViewportGraph(t *testing.T) {
	v := &Viewport{}
	a := entity.NewPrimitive("Cube", entity.KindBox, geom.Box(1, 1, 1), nil)
	b := entity.NewPrimitive("Cube", entity.KindBox, geom.Box(1, 1, 1), nil)
	v.Add(a)
	v.Add(b)
	v.Add(a)
	assert.Equal(t, 2, v.Len())
	v.Remove(a)
	v.Remove(a)
	assert.Equal(t, 1, v.Len())
}

func TestTextureOrphans(t *testing.T) {
	own := &entity.Texture{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	shared := &entity.Texture{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}
	textured := func(tex *entity.Texture) *entity.Primitive {
		m := entity.NewMaterial(entity.Hex(0xffffff))
		m.Texture = tex
		return entity.NewPrimitive("Plane", entity.KindPlane, geom.Plane(1, 1), m)
	}
	removed := entity.NewComposite("Pair", entity.KindGroup, textured(own), textured(shared))
	kept := textured(shared)

	c := newMeshCache()
	c.textures[own] = rl.Texture2D{ID: 1}
	c.textures[shared] = rl.Texture2D{ID: 2}
	assert.Equal(t, []*entity.Texture{own}, c.orphans(removed, []entity.Entity{kept}))
	assert.ElementsMatch(t, []*entity.Texture{own, shared}, c.orphans(removed, nil))
}

func TestGizmoAttach(t *testing.T) {
	g := NewGizmo()
	assert.Equal(t, scene.Translate, g.Mode())
	e := entity.NewPrimitive("Cube", entity.KindBox, geom.Box(1, 1, 1), nil)
	var h scene.ModeHandle = g
	h.Attach(e)
	h.SetMode(scene.Rotate)
	assert.Same(t, e, g.Target())
	assert.Equal(t, float32(rotateRate), g.rate())
	h.Detach()
	assert.Nil(t, g.Target())
	assert.False(t, g.Active())
}
