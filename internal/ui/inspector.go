package ui

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Inspector is the right panel describing the selection: its label, surface color and
// transform.
type Inspector struct {
	panel    *Node
	title    *Node
	info     *Node
	color    *Node
	swatch   *Node
	position *Node
	rotation *Node
	scale    *Node
	fill     rl.Color
	hasColor bool
}

// NewInspector returns an inspector showing no selection.
func NewInspector() *Inspector {
	in := &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Inspector"),
		info:     NewNode("label", "inspector-row", "", "Selected: None"),
		color:    NewNode("label", "inspector-row", "", ""),
		swatch:   NewNode("label", "inspector-swatch", "", ""),
		position: NewNode("label", "inspector-row", "", ""),
		rotation: NewNode("label", "inspector-row", "", ""),
		scale:    NewNode("label", "inspector-row", "", ""),
	}
	in.swatch.Fill = &in.fill
	return in
}

// SetInfo sets the selection label.
func (in *Inspector) SetInfo(text string) {
	in.info.Text = "Selected: " + text
}

// SetColor shows c in the color row and swatch.
func (in *Inspector) SetColor(c colorful.Color) {
	r, g, b := c.Clamped().RGB255()
	in.fill = rl.NewColor(r, g, b, 255)
	in.color.Text = "Color: " + c.Clamped().Hex()
	in.hasColor = true
}

// Track refreshes the transform rows from e. A nil e clears them along with the color rows.
func (in *Inspector) Track(e entity.Entity) {
	if e == nil {
		in.position.Text, in.rotation.Text, in.scale.Text = "", "", ""
		in.color.Text, in.hasColor = "", false
		return
	}
	t := e.Transform()
	in.position.Text = "Position: " + triple(t.Position)
	in.rotation.Text = "Rotation: " + triple(t.Rotation.Scale(180/math32.Pi))
	in.scale.Text = "Scale: " + triple(t.Scale)
}

// Lines returns the text rows currently shown.
func (in *Inspector) Lines() []string {
	var out []string
	for _, n := range in.rows() {
		if n.Text != "" {
			out = append(out, n.Text)
		}
	}
	return out
}

func triple(v geom.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v[0], v[1], v[2])
}

func (in *Inspector) rows() []*Node {
	rows := []*Node{in.title, in.info}
	if in.hasColor {
		rows = append(rows, in.color, in.swatch)
	}
	if in.position.Text != "" {
		rows = append(rows, in.position, in.rotation, in.scale)
	}
	return rows
}

func (in *Inspector) layout(e *Engine) {
	e.Stack(in.panel, in.rows())
}

func (in *Inspector) appendNodes(dst []*Node) []*Node {
	dst = append(dst, in.panel)
	return append(dst, in.rows()...)
}
