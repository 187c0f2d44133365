// Package entity defines the objects a user places in the scene: primitives (one shape with a
// surface material) and composites (an ordered group of child entities).
package entity

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/geom"
)

// Kind tags where an entity came from. It is informational: import rebuilds shapes from the
// display name, not from the kind.
type Kind string

const (
	KindBox         Kind = "box"
	KindSphere      Kind = "sphere"
	KindPlane       Kind = "plane"
	KindCylinder    Kind = "cylinder"
	KindCone        Kind = "cone"
	KindGroup       Kind = "group"
	KindHouse       Kind = "house"
	KindTree        Kind = "tree"
	KindLamp        Kind = "lamp"
	KindTextStack   Kind = "text-stack"
	KindImageBox    Kind = "image-box"
	KindImagePlane  Kind = "image-plane"
	KindImageSphere Kind = "image-sphere"
	KindImported    Kind = "imported"
)

// Transform is position, Euler rotation (radians, XYZ order) and scale.
type Transform struct {
	Position geom.Vec3
	Rotation geom.Euler
	Scale    geom.Vec3
}

// NewTransform returns the identity transform (unit scale).
func NewTransform() Transform {
	return Transform{Scale: geom.Vec3{1, 1, 1}}
}

// Matrix returns the local matrix of t.
func (t Transform) Matrix() geom.Mat4 {
	return geom.Compose(t.Position, t.Rotation, t.Scale)
}

// Texture is a raster used as a surface map.
type Texture struct {
	Image *image.RGBA
}

// Material is the surface of a primitive.
type Material struct {
	Color             colorful.Color
	Emissive          colorful.Color
	EmissiveIntensity float32
	DoubleSided       bool
	Texture           *Texture
}

// NewMaterial returns an opaque single-sided material of the given color.
func NewMaterial(c colorful.Color) *Material {
	return &Material{Color: c}
}

// Hex returns the color 0xRRGGBB.
func Hex(v uint32) colorful.Color {
	return colorful.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// HexValue returns c as 0xRRGGBB, clamped to the RGB gamut.
func HexValue(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Entity is a top-level scene object or a part of a composite.
type Entity interface {
	ID() string
	SetID(id string)
	Name() string
	SetName(name string)
	Kind() Kind
	Transform() *Transform

	// HasSurfaceMaterial reports whether SurfaceMaterial returns a material.
	HasSurfaceMaterial() bool
	// SurfaceMaterial returns the entity's own material or, for a composite, the material of
	// the first child that has one. It returns nil when there is none.
	SurfaceMaterial() *Material

	// Children returns the parts of a composite in order; nil for a primitive.
	Children() []Entity
}

// base holds the fields every entity carries.
type base struct {
	id        string
	name      string
	kind      Kind
	transform Transform
}

func (b *base) ID() string            { return b.id }
func (b *base) SetID(id string)       { b.id = id }
func (b *base) Name() string          { return b.name }
func (b *base) SetName(name string)   { b.name = name }
func (b *base) Kind() Kind            { return b.kind }
func (b *base) Transform() *Transform { return &b.transform }

// Primitive is a single shape with a material.
type Primitive struct {
	base
	Shape    geom.Shape
	Material *Material
}

// NewPrimitive returns a primitive with an identity transform.
func NewPrimitive(name string, kind Kind, shape geom.Shape, mtl *Material) *Primitive {
	return &Primitive{
		base:     base{name: name, kind: kind, transform: NewTransform()},
		Shape:    shape,
		Material: mtl,
	}
}

func (p *Primitive) HasSurfaceMaterial() bool   { return p.Material != nil }
func (p *Primitive) SurfaceMaterial() *Material { return p.Material }
func (p *Primitive) Children() []Entity         { return nil }

// Composite groups child entities under one transform.
type Composite struct {
	base
	parts []Entity
}

// NewComposite returns an empty composite with an identity transform.
func NewComposite(name string, kind Kind, parts ...Entity) *Composite {
	return &Composite{
		base:  base{name: name, kind: kind, transform: NewTransform()},
		parts: parts,
	}
}

// Add appends a child.
func (c *Composite) Add(e Entity) {
	c.parts = append(c.parts, e)
}

func (c *Composite) Children() []Entity { return c.parts }

func (c *Composite) HasSurfaceMaterial() bool { return c.SurfaceMaterial() != nil }

func (c *Composite) SurfaceMaterial() *Material {
	for _, p := range c.parts {
		if prim, ok := p.(*Primitive); ok && prim.Material != nil {
			return prim.Material
		}
	}
	return nil
}

// Label is the text shown for e in lists and the inspector: the display name or, when empty,
// the identifier.
func Label(e Entity) string {
	if e.Name() != "" {
		return e.Name()
	}
	return e.ID()
}

// BaseLabel is the identifier prefix for e.
func BaseLabel(e Entity) string {
	if _, ok := e.(*Composite); ok {
		return "Group"
	}
	return "Mesh"
}

// Walk calls fn for e and every descendant with its world matrix. parent is the matrix of the
// space e lives in (identity for top-level entities). Walk stops descending when fn returns false.
func Walk(e Entity, parent geom.Mat4, fn func(e Entity, world geom.Mat4) bool) {
	world := parent.Mul(e.Transform().Matrix())
	if !fn(e, world) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, world, fn)
	}
}
