package render

import (
	"github.com/chewxy/math32"

	"scene-editor/internal/geom"
)

const (
	minDistance = 1
	maxDistance = 200
	maxPitch    = 1.5
	orbitRate   = 0.005
	panRate     = 0.0015
	zoomRate    = 0.1
)

// Orbit is an editor camera rig: a point of interest and the spherical offset of the eye from it.
type Orbit struct {
	Target   geom.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
}

// OrbitFrom returns the rig that places the eye at position looking at target.
func OrbitFrom(position, target geom.Vec3) Orbit {
	d := position.Sub(target)
	dist := d.Len()
	if dist == 0 {
		return Orbit{Target: target, Distance: minDistance}
	}
	return Orbit{
		Target:   target,
		Yaw:      math32.Atan2(d[0], d[2]),
		Pitch:    math32.Asin(d[1] / dist),
		Distance: dist,
	}
}

// Position returns the eye position.
func (o Orbit) Position() geom.Vec3 {
	cp := math32.Cos(o.Pitch)
	off := geom.V3(cp*math32.Sin(o.Yaw), math32.Sin(o.Pitch), cp*math32.Cos(o.Yaw))
	return o.Target.Add(off.Scale(o.Distance))
}

// Rotate turns the eye around the target by a pointer delta in pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Yaw -= dx * orbitRate
	o.Pitch += dy * orbitRate
	o.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, o.Pitch))
}

// Zoom moves the eye toward (positive steps) or away from the target.
func (o *Orbit) Zoom(steps float32) {
	o.Distance *= 1 - steps*zoomRate
	o.Distance = math32.Max(minDistance, math32.Min(maxDistance, o.Distance))
}

// Pan slides the target in the view plane by a pointer delta in pixels.
func (o *Orbit) Pan(dx, dy float32) {
	forward := o.Target.Sub(o.Position()).Normalize()
	right := forward.Cross(geom.V3(0, 1, 0)).Normalize()
	up := right.Cross(forward)
	k := o.Distance * panRate
	o.Target = o.Target.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}
