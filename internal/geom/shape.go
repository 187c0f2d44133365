package geom

import "github.com/chewxy/math32"

// ShapeKind selects the geometry of a Shape.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapePlane
	ShapeCylinder
	ShapeCone
)

var shapeNames = [...]string{"box", "sphere", "plane", "cylinder", "cone"}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[k]
}

// Shape is a primitive geometry centered at the local origin.
// Box uses Width/Height/Depth. Sphere uses Radius. Plane lies in the XY plane and uses
// Width/Height. Cylinder uses RadiusTop/Radius (bottom) and Height along Y. Cone is a cylinder
// with a zero top radius. Segments and Rings only affect the generated mesh.
type Shape struct {
	Kind      ShapeKind
	Width     float32
	Height    float32
	Depth     float32
	Radius    float32
	RadiusTop float32
	Segments  int
	Rings     int
}

func Box(w, h, d float32) Shape { return Shape{Kind: ShapeBox, Width: w, Height: h, Depth: d} }

func Sphere(r float32, segments, rings int) Shape {
	return Shape{Kind: ShapeSphere, Radius: r, Segments: segments, Rings: rings}
}

func Plane(w, h float32) Shape { return Shape{Kind: ShapePlane, Width: w, Height: h} }

func Cylinder(radiusTop, radiusBottom, h float32, segments int) Shape {
	return Shape{Kind: ShapeCylinder, RadiusTop: radiusTop, Radius: radiusBottom, Height: h, Segments: segments}
}

func Cone(r, h float32, segments int) Shape {
	return Shape{Kind: ShapeCone, Radius: r, Height: h, Segments: segments}
}

// AABB is an axis-aligned box.
type AABB struct {
	Min, Max Vec3
}

// Bounds returns the local bounding box of s.
func (s Shape) Bounds() AABB {
	switch s.Kind {
	case ShapeSphere:
		r := s.Radius
		return AABB{Min: Vec3{-r, -r, -r}, Max: Vec3{r, r, r}}
	case ShapePlane:
		return AABB{Min: Vec3{-s.Width / 2, -s.Height / 2, 0}, Max: Vec3{s.Width / 2, s.Height / 2, 0}}
	case ShapeCylinder, ShapeCone:
		r := math32.Max(s.Radius, s.RadiusTop)
		return AABB{Min: Vec3{-r, -s.Height / 2, -r}, Max: Vec3{r, s.Height / 2, r}}
	default:
		return AABB{Min: Vec3{-s.Width / 2, -s.Height / 2, -s.Depth / 2}, Max: Vec3{s.Width / 2, s.Height / 2, s.Depth / 2}}
	}
}

// Intersect returns the smallest t >= 0 at which r meets s, with r given in the shape's local
// space. Cylinders and cones are tested against their bounding box.
func (s Shape) Intersect(r Ray) (t float32, ok bool) {
	switch s.Kind {
	case ShapeSphere:
		return intersectSphere(r, s.Radius)
	case ShapePlane:
		return intersectPlane(r, s.Width, s.Height)
	default:
		return s.Bounds().Intersect(r)
	}
}

// Intersect runs a slab test against the box.
func (b AABB) Intersect(r Ray) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t0 := (b.Min[i] - r.Origin[i]) * inv
		t1 := (b.Max[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math32.Max(tmin, t0)
		tmax = math32.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

func intersectSphere(r Ray, radius float32) (float32, bool) {
	a := r.Dir.Dot(r.Dir)
	if a == 0 {
		return 0, false
	}
	b := 2 * r.Origin.Dot(r.Dir)
	c := r.Origin.Dot(r.Origin) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	if t := (-b - sq) / (2 * a); t >= 0 {
		return t, true
	}
	if t := (-b + sq) / (2 * a); t >= 0 {
		return t, true
	}
	return 0, false
}

// intersectPlane hits both faces.
func intersectPlane(r Ray, w, h float32) (float32, bool) {
	if math32.Abs(r.Dir[2]) < 1e-9 {
		return 0, false
	}
	t := -r.Origin[2] / r.Dir[2]
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	if math32.Abs(p[0]) > w/2 || math32.Abs(p[1]) > h/2 {
		return 0, false
	}
	return t, true
}
