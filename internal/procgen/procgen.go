// Package procgen turns a line of text or an image into a new scene entity. Text is matched
// against a fixed keyword table; images are classified by their mean brightness.
package procgen

import (
	"github.com/jinzhu/copier"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Part is one primitive of a composite template, positioned relative to the composite.
type Part struct {
	Name              string
	Shape             geom.Shape
	Color             uint32
	Emissive          uint32
	EmissiveIntensity float32
	Position          geom.Vec3
	Rotation          geom.Euler
}

// Template describes a composite entity.
type Template struct {
	Name  string
	Kind  entity.Kind
	Parts []Part
}

// Clone returns a deep copy of t.
func (t Template) Clone() Template {
	var c Template
	if err := copier.CopyWithOption(&c, &t, copier.Option{DeepCopy: true}); err != nil {
		panic(err)
	}
	return c
}

// Instantiate builds a fresh composite from t.
func (t Template) Instantiate() *entity.Composite {
	c := entity.NewComposite(t.Name, t.Kind)
	for _, p := range t.Parts {
		mtl := entity.NewMaterial(entity.Hex(p.Color))
		if p.EmissiveIntensity > 0 {
			mtl.Emissive = entity.Hex(p.Emissive)
			mtl.EmissiveIntensity = p.EmissiveIntensity
		}
		prim := entity.NewPrimitive(p.Name, shapeKind[p.Shape.Kind], p.Shape, mtl)
		prim.Transform().Position = p.Position
		prim.Transform().Rotation = p.Rotation
		c.Add(prim)
	}
	return c
}

var shapeKind = map[geom.ShapeKind]entity.Kind{
	geom.ShapeBox:      entity.KindBox,
	geom.ShapeSphere:   entity.KindSphere,
	geom.ShapePlane:    entity.KindPlane,
	geom.ShapeCylinder: entity.KindCylinder,
	geom.ShapeCone:     entity.KindCone,
}
