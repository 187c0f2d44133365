// Package scene holds the authoritative list of user-created entities (Registry) and the single
// active selection (Selection). Both are driven from the editor's main loop only.
package scene

import (
	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/entity"
)

// DisplayGraph is the renderer's view of the scene. It holds non-owning references.
type DisplayGraph interface {
	Add(e entity.Entity)
	Remove(e entity.Entity)
}

// Handle is the manipulation gizmo.
type Handle interface {
	Attach(e entity.Entity)
	Detach()
}

// HandleMode selects which transform component the handle edits.
type HandleMode string

const (
	Translate HandleMode = "translate"
	Rotate    HandleMode = "rotate"
	Scale     HandleMode = "scale"
)

// ParseHandleMode accepts the three mode names.
func ParseHandleMode(s string) (HandleMode, bool) {
	switch m := HandleMode(s); m {
	case Translate, Rotate, Scale:
		return m, true
	}
	return "", false
}

// ModeHandle is a Handle that supports switching modes.
type ModeHandle interface {
	Handle
	SetMode(m HandleMode)
}

// ListView shows the registered entities in registry order.
type ListView interface {
	Refresh(entities []entity.Entity)
}

// Panel is the selection feedback surface: list highlight, info text and color control.
type Panel interface {
	SetHighlight(id string, on bool)
	SetInfo(text string)
	SetColor(c colorful.Color)
}

// NoInfo is the info text shown when nothing is selected.
const NoInfo = "None"

type nopGraph struct{}

func (nopGraph) Add(entity.Entity)    {}
func (nopGraph) Remove(entity.Entity) {}

type nopHandle struct{}

func (nopHandle) Attach(entity.Entity) {}
func (nopHandle) Detach()              {}

type nopList struct{}

func (nopList) Refresh([]entity.Entity) {}

type nopPanel struct{}

func (nopPanel) SetHighlight(string, bool) {}
func (nopPanel) SetInfo(string)            {}
func (nopPanel) SetColor(colorful.Color)   {}
