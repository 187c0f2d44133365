package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-editor/internal/geom"
)

func TestPrimitiveSurfaceMaterial(t *testing.T) {
	mtl := NewMaterial(Hex(0xff0000))
	p := NewPrimitive("Cube", KindBox, geom.Box(1, 1, 1), mtl)
	assert.True(t, p.HasSurfaceMaterial())
	assert.Same(t, mtl, p.SurfaceMaterial())
	assert.Nil(t, p.Children())

	bare := NewPrimitive("Bare", KindBox, geom.Box(1, 1, 1), nil)
	assert.False(t, bare.HasSurfaceMaterial())
}

func TestCompositeUsesFirstChildWithMaterial(t *testing.T) {
	first := NewMaterial(Hex(0x00ff00))
	second := NewMaterial(Hex(0x0000ff))
	c := NewComposite("Group", KindGroup,
		NewPrimitive("a", KindBox, geom.Box(1, 1, 1), nil),
		NewPrimitive("b", KindBox, geom.Box(1, 1, 1), first),
		NewPrimitive("c", KindBox, geom.Box(1, 1, 1), second),
	)
	require.True(t, c.HasSurfaceMaterial())
	assert.Same(t, first, c.SurfaceMaterial())

	empty := NewComposite("Empty", KindGroup)
	assert.False(t, empty.HasSurfaceMaterial())
	assert.Nil(t, empty.SurfaceMaterial())
}

func TestHexRoundTrip(t *testing.T) {
	for _, v := range []uint32{0x000000, 0xffffff, 0xffcc99, 0x993333, 0x8b5a2b} {
		assert.Equal(t, v, HexValue(Hex(v)))
	}
}

func TestLabels(t *testing.T) {
	p := NewPrimitive("", KindBox, geom.Box(1, 1, 1), nil)
	p.SetID("Mesh_4")
	assert.Equal(t, "Mesh_4", Label(p))
	p.SetName("Crate")
	assert.Equal(t, "Crate", Label(p))
	assert.Equal(t, "Mesh", BaseLabel(p))
	assert.Equal(t, "Group", BaseLabel(NewComposite("g", KindGroup)))
}

func TestWalkComposesTransforms(t *testing.T) {
	child := NewPrimitive("c", KindBox, geom.Box(1, 1, 1), nil)
	child.Transform().Position = geom.V3(0, 1, 0)
	g := NewComposite("g", KindGroup, child)
	g.Transform().Position = geom.V3(5, 0, 0)
	g.Transform().Scale = geom.V3(2, 2, 2)

	var got []geom.Vec3
	Walk(g, geom.Identity(), func(e Entity, world geom.Mat4) bool {
		got = append(got, world.MulPoint(geom.Vec3{}))
		return true
	})
	require.Len(t, got, 2)
	assert.Equal(t, geom.V3(5, 0, 0), got[0])
	assert.Equal(t, geom.V3(5, 2, 0), got[1])
}
