package scene

import (
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Selection tracks at most one selected entity. The handle is attached exactly when an entity
// is selected, and the selected entity is always registered.
type Selection struct {
	reg     *Registry
	handle  Handle
	panel   Panel
	current entity.Entity
}

// Selected returns the selected entity or nil.
func (s *Selection) Selected() entity.Entity {
	return s.current
}

// Select makes e the selection. nil clears it. Selecting the current selection, or an entity
// that is not registered, changes nothing and returns false.
func (s *Selection) Select(e entity.Entity) bool {
	if e == s.current {
		return false
	}
	if e != nil && !s.reg.Contains(e) {
		return false
	}
	if prev := s.current; prev != nil {
		if s.reg.Contains(prev) {
			s.panel.SetHighlight(prev.ID(), false)
		}
		s.handle.Detach()
	}
	s.current = e
	if e == nil {
		s.panel.SetInfo(NoInfo)
		return true
	}
	s.handle.Attach(e)
	s.panel.SetInfo(entity.Label(e))
	s.panel.SetHighlight(e.ID(), true)
	if m := e.SurfaceMaterial(); m != nil {
		s.panel.SetColor(m.Color)
	}
	return true
}

// ApplyColor sets the surface color of the selection and reflects it into the panel. It reports
// false when nothing is selected or the selection has no surface material.
func (s *Selection) ApplyColor(c colorful.Color) bool {
	if s.current == nil {
		return false
	}
	m := s.current.SurfaceMaterial()
	if m == nil {
		return false
	}
	m.Color = c
	s.panel.SetColor(c)
	return true
}

// Hit returns the registered top-level entity owning the nearest surface hit by ray, testing
// composite children individually.
func (s *Selection) Hit(ray geom.Ray) (hit entity.Entity, dist float32, ok bool) {
	best := math32.Inf(1)
	for _, top := range s.reg.All() {
		entity.Walk(top, geom.Identity(), func(e entity.Entity, world geom.Mat4) bool {
			p, isPrim := e.(*entity.Primitive)
			if !isPrim {
				return true
			}
			inv, invertible := world.InverseAffine()
			if !invertible {
				return true
			}
			if t, found := p.Shape.Intersect(ray.Transform(inv)); found && t < best {
				best, hit = t, top
			}
			return true
		})
	}
	if hit == nil {
		return nil, 0, false
	}
	return hit, best, true
}

// Pick selects the entity hit by ray, or clears the selection when nothing is hit.
func (s *Selection) Pick(ray geom.Ray) entity.Entity {
	hit, _, _ := s.Hit(ray)
	s.Select(hit)
	return hit
}

// PickPointer resolves a pointer position on a w×h viewport through cam and picks.
func (s *Selection) PickPointer(cam geom.Camera, px, py, w, h float32) entity.Entity {
	return s.Pick(cam.PointerRay(px, py, w, h))
}
