package ui

import (
	"fmt"

	"scene-editor/internal/entity"
)

const (
	itemClass         = "object-item"
	itemSelectedClass = "object-item-selected"
)

// ObjectList is the left panel listing registered entities in registry order, one row each,
// with the selected row highlighted.
type ObjectList struct {
	panel    *Node
	title    *Node
	items    []*Node
	selected string
}

// NewObjectList returns an empty list.
func NewObjectList() *ObjectList {
	return &ObjectList{
		panel: NewNode("panel", "objects", "", ""),
		title: NewNode("label", "objects-title", "", "Objects (0)"),
	}
}

// Refresh rebuilds the rows from entities.
func (l *ObjectList) Refresh(entities []entity.Entity) {
	items := make([]*Node, 0, len(entities))
	for _, e := range entities {
		class := itemClass
		if e.ID() == l.selected {
			class = itemSelectedClass
		}
		items = append(items, NewNode("item", class, e.ID(), fmt.Sprintf("%s  %s", entity.Label(e), e.ID())))
	}
	l.items = items
	l.title.Text = fmt.Sprintf("Objects (%d)", len(items))
}

// SetHighlight marks the row for id as selected or not.
func (l *ObjectList) SetHighlight(id string, on bool) {
	switch {
	case on:
		l.selected = id
	case l.selected == id:
		l.selected = ""
	}
	for _, it := range l.items {
		if it.ID != id {
			continue
		}
		if on {
			it.Class = itemSelectedClass
		} else {
			it.Class = itemClass
		}
	}
}

// Selected returns the highlighted identifier, or "".
func (l *ObjectList) Selected() string { return l.selected }

// Rows returns the row texts in order.
func (l *ObjectList) Rows() []string {
	out := make([]string, len(l.items))
	for i, it := range l.items {
		out[i] = it.Text
	}
	return out
}

// ItemAt returns the identifier of the row under the screen point.
func (l *ObjectList) ItemAt(x, y float32) (string, bool) {
	for _, it := range l.items {
		if it.Contains(x, y) {
			return it.ID, true
		}
	}
	return "", false
}

func (l *ObjectList) layout(e *Engine) {
	rows := make([]*Node, 0, len(l.items)+1)
	rows = append(rows, l.title)
	e.Stack(l.panel, append(rows, l.items...))
}

func (l *ObjectList) appendNodes(dst []*Node) []*Node {
	dst = append(dst, l.panel, l.title)
	return append(dst, l.items...)
}
