package geom

import "github.com/chewxy/math32"

// Vec3 is a 3D vector or point. JSON and YAML encode it as [x, y, z].
type Vec3 [3]float32

// V3 returns the vector (x, y, z).
func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}
func (a Vec3) Dot(b Vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float32 { return math32.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector in the direction of a. The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Mat4 is an affine transform in math order: m[row][col], applied to column vectors,
// translation in the last column.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Mul returns m·n (n is applied first).
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[i][k] * n[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

// MulPoint transforms p as a point (translation applied).
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p[0] + m[0][1]*p[1] + m[0][2]*p[2] + m[0][3],
		m[1][0]*p[0] + m[1][1]*p[1] + m[1][2]*p[2] + m[1][3],
		m[2][0]*p[0] + m[2][1]*p[1] + m[2][2]*p[2] + m[2][3],
	}
}

// MulDir transforms d as a direction (translation ignored).
func (m Mat4) MulDir(d Vec3) Vec3 {
	return Vec3{
		m[0][0]*d[0] + m[0][1]*d[1] + m[0][2]*d[2],
		m[1][0]*d[0] + m[1][1]*d[1] + m[1][2]*d[2],
		m[2][0]*d[0] + m[2][1]*d[1] + m[2][2]*d[2],
	}
}

// InverseAffine inverts an affine matrix. ok is false when the linear part is singular
// (e.g. a zero scale axis).
func (m Mat4) InverseAffine() (inv Mat4, ok bool) {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]
	co00 := e*i - f*h
	co01 := f*g - d*i
	co02 := d*h - e*g
	det := a*co00 + b*co01 + c*co02
	if det == 0 || math32.IsNaN(det) {
		return Identity(), false
	}
	r := 1 / det
	inv[0] = [4]float32{co00 * r, (c*h - b*i) * r, (b*f - c*e) * r, 0}
	inv[1] = [4]float32{co01 * r, (a*i - c*g) * r, (c*d - a*f) * r, 0}
	inv[2] = [4]float32{co02 * r, (b*g - a*h) * r, (a*e - b*d) * r, 0}
	inv[3] = [4]float32{0, 0, 0, 1}
	t := inv.MulDir(Vec3{m[0][3], m[1][3], m[2][3]})
	inv[0][3], inv[1][3], inv[2][3] = -t[0], -t[1], -t[2]
	return inv, true
}

// Euler is a rotation in radians applied in XYZ order (matrix = Rx·Ry·Rz).
type Euler = Vec3

// RotationMatrix returns the rotation matrix for e.
func RotationMatrix(e Euler) Mat4 {
	a, b := math32.Cos(e[0]), math32.Sin(e[0])
	c, d := math32.Cos(e[1]), math32.Sin(e[1])
	ce, f := math32.Cos(e[2]), math32.Sin(e[2])
	ae, af, be, bf := a*ce, a*f, b*ce, b*f
	return Mat4{
		{c * ce, -c * f, d, 0},
		{af + be*d, ae - bf*d, -b * c, 0},
		{bf - ae*d, be + af*d, a * c, 0},
		{0, 0, 0, 1},
	}
}

// Quaternion returns e as a unit quaternion [x, y, z, w].
func Quaternion(e Euler) [4]float32 {
	c1, s1 := math32.Cos(e[0]/2), math32.Sin(e[0]/2)
	c2, s2 := math32.Cos(e[1]/2), math32.Sin(e[1]/2)
	c3, s3 := math32.Cos(e[2]/2), math32.Sin(e[2]/2)
	return [4]float32{
		s1*c2*c3 + c1*s2*s3,
		c1*s2*c3 - s1*c2*s3,
		c1*c2*s3 + s1*s2*c3,
		c1*c2*c3 - s1*s2*s3,
	}
}

// Compose returns translate(position)·rotate(rotation)·scale(scale).
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	m := RotationMatrix(rotation)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= scale[j]
		}
		m[i][3] = position[i]
	}
	return m
}

// NormalMatrix returns the inverse transpose of m's linear part, for transforming surface
// normals. A singular m yields its own linear part.
func (m Mat4) NormalMatrix() Mat4 {
	inv, ok := m.InverseAffine()
	if !ok {
		inv = m
	}
	var n Mat4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n[i][j] = inv[j][i]
		}
	}
	n[3][3] = 1
	return n
}
