package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, button. Class and ID are matched by the stylesheet.
// Bounds are resolved from the style when the node is drawn; Fill, when set, overrides the
// styled background.
type Node struct {
	Type   string // "panel", "label", "item"
	Class  string
	ID     string
	Bounds rl.Rectangle
	Text   string
	Fill   *rl.Color
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// Contains reports whether the screen point lies inside the node's last drawn bounds.
func (n *Node) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.NewVector2(x, y), n.Bounds)
}
