package ui

import (
	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/entity"
)

// Overlay is the editor's 2D interface: the object list and the inspector. It is the list view
// and selection panel the scene registry reports to.
type Overlay struct {
	engine    *Engine
	Objects   *ObjectList
	Inspector *Inspector
	nodes     []*Node
}

// NewOverlay returns an overlay drawn by e.
func NewOverlay(e *Engine) *Overlay {
	return &Overlay{engine: e, Objects: NewObjectList(), Inspector: NewInspector()}
}

func (o *Overlay) Refresh(entities []entity.Entity) { o.Objects.Refresh(entities) }
func (o *Overlay) SetHighlight(id string, on bool)  { o.Objects.SetHighlight(id, on) }
func (o *Overlay) SetInfo(text string)              { o.Inspector.SetInfo(text) }
func (o *Overlay) SetColor(c colorful.Color)        { o.Inspector.SetColor(c) }

// Draw lays out and draws both panels. sel is the current selection, or nil.
func (o *Overlay) Draw(sel entity.Entity) {
	o.Inspector.Track(sel)
	o.nodes = o.Objects.appendNodes(o.nodes[:0])
	o.nodes = o.Inspector.appendNodes(o.nodes)
	o.engine.Layout(o.nodes)
	o.Objects.layout(o.engine)
	o.Inspector.layout(o.engine)
	o.engine.Draw(o.nodes)
}

// Covers reports whether the screen point lies on a panel. Pointer picking in the viewport
// skips such points.
func (o *Overlay) Covers(x, y float32) bool {
	return o.Objects.panel.Contains(x, y) || o.Inspector.panel.Contains(x, y)
}
