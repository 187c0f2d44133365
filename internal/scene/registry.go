package scene

import (
	"scene-editor/internal/entity"
	"scene-editor/internal/ident"
)

// Options wires a Registry to its collaborators. Nil collaborators are replaced by no-ops.
type Options struct {
	IDs    *ident.Generator
	Graph  DisplayGraph
	List   ListView
	Handle Handle
	Panel  Panel
}

// Registry is the ordered list of top-level entities. Insertion order is the display order of
// the object list. Every member is also a member of the display graph, and nothing else is.
type Registry struct {
	ids      *ident.Generator
	graph    DisplayGraph
	list     ListView
	sel      *Selection
	entities []entity.Entity
	byID     map[string]entity.Entity
}

// New returns an empty registry together with its selection.
func New(opts Options) *Registry {
	if opts.IDs == nil {
		opts.IDs = ident.New()
	}
	if opts.Graph == nil {
		opts.Graph = nopGraph{}
	}
	if opts.List == nil {
		opts.List = nopList{}
	}
	if opts.Handle == nil {
		opts.Handle = nopHandle{}
	}
	if opts.Panel == nil {
		opts.Panel = nopPanel{}
	}
	r := &Registry{
		ids:   opts.IDs,
		graph: opts.Graph,
		list:  opts.List,
		byID:  make(map[string]entity.Entity),
	}
	r.sel = &Selection{reg: r, handle: opts.Handle, panel: opts.Panel}
	return r
}

// Selection returns the selection bound to this registry.
func (r *Registry) Selection() *Selection {
	return r.sel
}

// Register adds e to the end of the list and to the display graph, refreshes the list view and
// selects e. An identifier is assigned when e has none or when its identifier is already taken.
// Registering a current member does nothing.
func (r *Registry) Register(e entity.Entity) {
	if e == nil || r.Contains(e) {
		return
	}
	r.add(e)
	r.list.Refresh(r.All())
	r.sel.Select(e)
}

func (r *Registry) add(e entity.Entity) {
	if id := e.ID(); id == "" || r.byID[id] != nil {
		e.SetID(r.ids.Next(entity.BaseLabel(e)))
	} else {
		r.ids.Observe(id)
	}
	r.entities = append(r.entities, e)
	r.byID[e.ID()] = e
	r.graph.Add(e)
}

// Remove takes e out of the display graph and the list, clearing the selection first when e is
// selected. Entities that are not registered are ignored.
func (r *Registry) Remove(e entity.Entity) {
	if e == nil || !r.Contains(e) {
		return
	}
	if r.sel.current == e {
		r.sel.Select(nil)
	}
	r.graph.Remove(e)
	delete(r.byID, e.ID())
	for i, x := range r.entities {
		if x == e {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}
	r.list.Refresh(r.All())
}

// All returns a snapshot of the registered entities in order. The returned slice is not
// affected by later Register or Remove calls.
func (r *Registry) All() []entity.Entity {
	out := make([]entity.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Lookup returns the entity with the given identifier.
func (r *Registry) Lookup(id string) (entity.Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Contains reports whether e itself is registered.
func (r *Registry) Contains(e entity.Entity) bool {
	if e == nil {
		return false
	}
	return r.byID[e.ID()] == e
}

// ReplaceAll clears the selection, the display graph and the list, then registers entities in
// order. Identifiers already present on the entities are kept unless they collide. Nothing is
// selected afterwards and the list view is refreshed once.
func (r *Registry) ReplaceAll(entities []entity.Entity) {
	r.sel.Select(nil)
	for _, e := range r.entities {
		r.graph.Remove(e)
	}
	r.entities = nil
	r.byID = make(map[string]entity.Entity)
	for _, e := range entities {
		if e == nil || r.Contains(e) {
			continue
		}
		r.add(e)
	}
	r.list.Refresh(r.All())
}

// Clear removes every entity.
func (r *Registry) Clear() {
	r.ReplaceAll(nil)
}
