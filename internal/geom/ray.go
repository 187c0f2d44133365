package geom

import "github.com/chewxy/math32"

// Ray is a half line Origin + t·Dir, t >= 0. Dir does not need to be unit length; hit distances
// are expressed in multiples of Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

// Transform returns the ray mapped through m. Parameters along the ray are preserved.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{Origin: m.MulPoint(r.Origin), Dir: m.MulDir(r.Dir)}
}

// Camera is a perspective camera. Fovy is the vertical field of view in degrees.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3
	Fovy     float32
	Aspect   float32
}

// PointerRay resolves the pointer position (px, py) on a w×h viewport to a world-space ray from
// the camera position. Pixel origin is the top-left corner.
func (c Camera) PointerRay(px, py, w, h float32) Ray {
	if w <= 0 || h <= 0 {
		return Ray{Origin: c.Position, Dir: c.Target.Sub(c.Position).Normalize()}
	}
	ndcX := px/w*2 - 1
	ndcY := -(py/h*2 - 1)
	return c.NDCRay(ndcX, ndcY)
}

// NDCRay returns the ray through normalized device coordinates in [-1, 1].
func (c Camera) NDCRay(ndcX, ndcY float32) Ray {
	forward := c.Target.Sub(c.Position).Normalize()
	up := c.Up
	if up == (Vec3{}) {
		up = Vec3{0, 1, 0}
	}
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	half := math32.Tan(c.Fovy * math32.Pi / 360)
	dir := forward.
		Add(right.Scale(ndcX * half * aspect)).
		Add(trueUp.Scale(ndcY * half))
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}
