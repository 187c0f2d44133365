package geom

import "github.com/chewxy/math32"

// Mesh is an indexed triangle list.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

const (
	defaultSegments = 16
	defaultRings    = 12
)

// Mesh builds the triangle mesh for s.
func (s Shape) Mesh() Mesh {
	switch s.Kind {
	case ShapeSphere:
		return sphereMesh(s)
	case ShapePlane:
		return planeMesh(s.Width, s.Height)
	case ShapeCylinder:
		return cylinderMesh(s.RadiusTop, s.Radius, s.Height, s.Segments)
	case ShapeCone:
		return cylinderMesh(0, s.Radius, s.Height, s.Segments)
	default:
		return boxMesh(s.Width, s.Height, s.Depth)
	}
}

func (m *Mesh) quad(a, b, c, d Vec3, n Vec3) {
	base := uint32(len(m.Positions))
	for _, p := range [4]Vec3{a, b, c, d} {
		m.Positions = append(m.Positions, p)
		m.Normals = append(m.Normals, n)
	}
	m.UVs = append(m.UVs, [2]float32{0, 1}, [2]float32{1, 1}, [2]float32{1, 0}, [2]float32{0, 0})
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

func boxMesh(w, h, d float32) Mesh {
	x, y, z := w/2, h/2, d/2
	var m Mesh
	m.quad(V3(x, -y, z), V3(x, -y, -z), V3(x, y, -z), V3(x, y, z), V3(1, 0, 0))
	m.quad(V3(-x, -y, -z), V3(-x, -y, z), V3(-x, y, z), V3(-x, y, -z), V3(-1, 0, 0))
	m.quad(V3(-x, y, z), V3(x, y, z), V3(x, y, -z), V3(-x, y, -z), V3(0, 1, 0))
	m.quad(V3(-x, -y, -z), V3(x, -y, -z), V3(x, -y, z), V3(-x, -y, z), V3(0, -1, 0))
	m.quad(V3(-x, -y, z), V3(x, -y, z), V3(x, y, z), V3(-x, y, z), V3(0, 0, 1))
	m.quad(V3(x, -y, -z), V3(-x, -y, -z), V3(-x, y, -z), V3(x, y, -z), V3(0, 0, -1))
	return m
}

func planeMesh(w, h float32) Mesh {
	x, y := w/2, h/2
	var m Mesh
	m.quad(V3(-x, -y, 0), V3(x, -y, 0), V3(x, y, 0), V3(-x, y, 0), V3(0, 0, 1))
	return m
}

func sphereMesh(s Shape) Mesh {
	segs, rings := s.Segments, s.Rings
	if segs < 3 {
		segs = defaultSegments
	}
	if rings < 2 {
		rings = defaultRings
	}
	var m Mesh
	for j := 0; j <= rings; j++ {
		v := float32(j) / float32(rings)
		theta := v * math32.Pi
		for i := 0; i <= segs; i++ {
			u := float32(i) / float32(segs)
			phi := u * 2 * math32.Pi
			n := V3(-math32.Cos(phi)*math32.Sin(theta), math32.Cos(theta), math32.Sin(phi)*math32.Sin(theta))
			m.Positions = append(m.Positions, n.Scale(s.Radius))
			m.Normals = append(m.Normals, n)
			m.UVs = append(m.UVs, [2]float32{u, v})
		}
	}
	row := uint32(segs + 1)
	for j := uint32(0); j < uint32(rings); j++ {
		for i := uint32(0); i < uint32(segs); i++ {
			a := j*row + i
			b := a + row
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

func cylinderMesh(rt, rb, h float32, segs int) Mesh {
	if segs < 3 {
		segs = defaultSegments
	}
	var m Mesh
	half := h / 2
	var slope float32
	if h != 0 {
		slope = (rb - rt) / h
	}
	for j := 0; j <= 1; j++ {
		y := half - float32(j)*h
		r := rt + float32(j)*(rb-rt)
		for i := 0; i <= segs; i++ {
			u := float32(i) / float32(segs)
			a := u * 2 * math32.Pi
			sin, cos := math32.Sin(a), math32.Cos(a)
			m.Positions = append(m.Positions, [3]float32{r * sin, y, r * cos})
			m.Normals = append(m.Normals, V3(sin, slope, cos).Normalize())
			m.UVs = append(m.UVs, [2]float32{u, float32(j)})
		}
	}
	row := uint32(segs + 1)
	for i := uint32(0); i < uint32(segs); i++ {
		a, b := i, i+row
		m.Indices = append(m.Indices, a, b, a+1, b, b+1, a+1)
	}
	m.cap(rb, -half, segs, -1)
	if rt > 0 {
		m.cap(rt, half, segs, 1)
	}
	return m
}

func (m *Mesh) cap(r, y float32, segs int, sign float32) {
	center := uint32(len(m.Positions))
	m.Positions = append(m.Positions, [3]float32{0, y, 0})
	m.Normals = append(m.Normals, [3]float32{0, sign, 0})
	m.UVs = append(m.UVs, [2]float32{0.5, 0.5})
	for i := 0; i <= segs; i++ {
		a := float32(i) / float32(segs) * 2 * math32.Pi
		sin, cos := math32.Sin(a), math32.Cos(a)
		m.Positions = append(m.Positions, [3]float32{r * sin, y, r * cos})
		m.Normals = append(m.Normals, [3]float32{0, sign, 0})
		m.UVs = append(m.UVs, [2]float32{cos*0.5 + 0.5, sin*0.5*sign + 0.5})
	}
	for i := uint32(1); i <= uint32(segs); i++ {
		if sign > 0 {
			m.Indices = append(m.Indices, center, center+i, center+i+1)
		} else {
			m.Indices = append(m.Indices, center, center+i+1, center+i)
		}
	}
}
