package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func TestComposeAndInverse(t *testing.T) {
	m := Compose(V3(1, 2, 3), Euler{0.3, -0.7, 1.1}, V3(2, 0.5, 4))
	inv, ok := m.InverseAffine()
	require.True(t, ok)
	p := V3(0.25, -4, 9)
	assertVec(t, p, inv.MulPoint(m.MulPoint(p)))
}

func TestInverseSingular(t *testing.T) {
	_, ok := Compose(Vec3{}, Euler{}, V3(1, 0, 1)).InverseAffine()
	assert.False(t, ok)
}

func TestRotationMatrixMatchesQuaternion(t *testing.T) {
	e := Euler{0.4, 1.2, -0.5}
	q := Quaternion(e)
	// rotate (1,0,0) with the quaternion: v' = v + 2w(q×v) + 2q×(q×v)
	qv := V3(q[0], q[1], q[2])
	v := V3(1, 0, 0)
	c1 := qv.Cross(v)
	rotated := v.Add(c1.Scale(2 * q[3])).Add(qv.Cross(c1).Scale(2))
	assertVec(t, RotationMatrix(e).MulDir(v), rotated)
}

func TestRotationY(t *testing.T) {
	m := RotationMatrix(Euler{0, math32.Pi / 2, 0})
	assertVec(t, V3(0, 0, -1), m.MulDir(V3(1, 0, 0)))
}

func TestBoxIntersect(t *testing.T) {
	s := Box(2, 2, 2)
	hit, ok := s.Intersect(Ray{Origin: V3(0, 0, 10), Dir: V3(0, 0, -1)})
	require.True(t, ok)
	assert.InDelta(t, 9, hit, tol)

	_, ok = s.Intersect(Ray{Origin: V3(5, 0, 10), Dir: V3(0, 0, -1)})
	assert.False(t, ok)

	// pointing away
	_, ok = s.Intersect(Ray{Origin: V3(0, 0, 10), Dir: V3(0, 0, 1)})
	assert.False(t, ok)

	// from inside the far face is hit
	hit, ok = s.Intersect(Ray{Origin: V3(0, 0, 0), Dir: V3(1, 0, 0)})
	require.True(t, ok)
	assert.InDelta(t, 1, hit, tol)
}

func TestSphereIntersect(t *testing.T) {
	s := Sphere(1, 16, 12)
	hit, ok := s.Intersect(Ray{Origin: V3(0, 0, -5), Dir: V3(0, 0, 1)})
	require.True(t, ok)
	assert.InDelta(t, 4, hit, tol)

	_, ok = s.Intersect(Ray{Origin: V3(0, 1.5, -5), Dir: V3(0, 0, 1)})
	assert.False(t, ok)

	// unnormalized direction keeps the parameterization
	hit, ok = s.Intersect(Ray{Origin: V3(0, 0, -5), Dir: V3(0, 0, 2)})
	require.True(t, ok)
	assert.InDelta(t, 2, hit, tol)
}

func TestPlaneIntersectBothSides(t *testing.T) {
	s := Plane(2, 2)
	hit, ok := s.Intersect(Ray{Origin: V3(0.5, 0.5, 3), Dir: V3(0, 0, -1)})
	require.True(t, ok)
	assert.InDelta(t, 3, hit, tol)

	_, ok = s.Intersect(Ray{Origin: V3(0.5, 0.5, -3), Dir: V3(0, 0, 1)})
	assert.True(t, ok)

	_, ok = s.Intersect(Ray{Origin: V3(1.5, 0, 3), Dir: V3(0, 0, -1)})
	assert.False(t, ok)

	_, ok = s.Intersect(Ray{Origin: V3(0, 0, 3), Dir: V3(1, 0, 0)})
	assert.False(t, ok)
}

func TestConeUsesBounds(t *testing.T) {
	s := Cone(1, 2, 4)
	b := s.Bounds()
	assertVec(t, V3(-1, -1, -1), b.Min)
	assertVec(t, V3(1, 1, 1), b.Max)
	_, ok := s.Intersect(Ray{Origin: V3(0, 0.9, 5), Dir: V3(0, 0, -1)})
	assert.True(t, ok)
}

func TestMeshes(t *testing.T) {
	cases := []struct {
		shape     Shape
		vertices  int
		triangles int
	}{
		{Box(1, 1, 1), 24, 12},
		{Plane(2, 2), 4, 2},
		{Sphere(1, 8, 4), 9 * 5, 8 * 4 * 2},
		{Cone(1, 1, 4), 10 + 6, 8 + 4},
		{Cylinder(1, 1, 1, 4), 10 + 6 + 6, 8 + 4 + 4},
	}
	for _, c := range cases {
		m := c.shape.Mesh()
		assert.Len(t, m.Positions, c.vertices, c.shape.Kind.String())
		assert.Len(t, m.Normals, c.vertices, c.shape.Kind.String())
		assert.Len(t, m.UVs, c.vertices, c.shape.Kind.String())
		assert.Len(t, m.Indices, c.triangles*3, c.shape.Kind.String())
		for _, idx := range m.Indices {
			assert.Less(t, int(idx), len(m.Positions))
		}
	}
}

func TestCameraPointerRay(t *testing.T) {
	cam := Camera{Position: V3(0, 0, 10), Target: V3(0, 0, 0), Up: V3(0, 1, 0), Fovy: 90, Aspect: 2}
	center := cam.PointerRay(400, 200, 800, 400)
	assertVec(t, V3(0, 0, -1), center.Dir)

	// top-right corner: 45° half fov, aspect 2
	corner := cam.PointerRay(800, 0, 800, 400)
	assertVec(t, V3(2, 1, -1).Normalize(), corner.Dir)
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	m := Compose(V3(5, 5, 5), Euler{}, V3(2, 1, 1))
	// the normal of the plane x+y=0 stays perpendicular after stretching x
	n := m.NormalMatrix().MulDir(V3(1, 1, 0)).Normalize()
	tangent := m.MulDir(V3(1, -1, 0))
	assert.InDelta(t, 0, n.Dot(tangent), 1e-6)
	assert.InDelta(t, 1, n.Len(), 1e-6)
}
