// Package primitives builds the shapes a user adds directly (cube, sphere, plane). Their default
// size, placement and color come from the YAML definitions embedded under defs/.
package primitives

import (
	"embed"
	"fmt"
	"path"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

//go:embed defs/*.yaml
var defsFS embed.FS

// Load reads the definition called name (file defs/<name>.yaml).
func Load(name string) (PrimitiveDef, error) {
	var def PrimitiveDef
	data, err := defsFS.ReadFile(path.Join("defs", name+".yaml"))
	if err != nil {
		return def, fmt.Errorf("primitives: %w", err)
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("primitives: %s: %w", name, err)
	}
	return def, nil
}

// Build constructs a primitive entity from def.
func Build(def PrimitiveDef) (*entity.Primitive, error) {
	var (
		shape geom.Shape
		kind  entity.Kind
	)
	switch def.Type {
	case "box", "cube":
		shape, kind = geom.Box(def.Size[0], def.Size[1], def.Size[2]), entity.KindBox
	case "sphere":
		shape, kind = geom.Sphere(def.Radius, def.Segments, def.Rings), entity.KindSphere
	case "plane":
		shape, kind = geom.Plane(def.Size[0], def.Size[1]), entity.KindPlane
	case "cylinder":
		shape, kind = geom.Cylinder(def.Radius, def.Radius, def.Size[1], def.Segments), entity.KindCylinder
	case "cone":
		shape, kind = geom.Cone(def.Radius, def.Size[1], def.Segments), entity.KindCone
	default:
		return nil, fmt.Errorf("primitives: unknown type %q", def.Type)
	}

	c := entity.Hex(0xffffff)
	if def.Color != "" {
		var err error
		if c, err = colorful.Hex(def.Color); err != nil {
			return nil, fmt.Errorf("primitives: %s: %w", def.Name, err)
		}
	}
	mtl := entity.NewMaterial(c)
	mtl.DoubleSided = def.DoubleSided

	p := entity.NewPrimitive(def.Name, kind, shape, mtl)
	t := p.Transform()
	t.Position = geom.Vec3(def.Position)
	for i, deg := range def.Rotation {
		t.Rotation[i] = deg * math32.Pi / 180
	}
	return p, nil
}

func build(name string) *entity.Primitive {
	def, err := Load(name)
	if err != nil {
		panic(err)
	}
	p, err := Build(def)
	if err != nil {
		panic(err)
	}
	return p
}

// Box returns a new white unit cube resting on the ground.
func Box() *entity.Primitive { return build("cube") }

// Sphere returns a new white sphere of radius 0.6 resting on the ground.
func Sphere() *entity.Primitive { return build("sphere") }

// Plane returns a new white double-sided 2×2 plane.
func Plane() *entity.Primitive { return build("plane") }
