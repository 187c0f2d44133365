package ui

import (
	_ "embed"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 18

//go:embed editor.css
var defaultCSS string

// Engine resolves node styles from a stylesheet and draws nodes with raylib in slice order.
// Resolved styles are cached per class/id pair and dropped whenever the stylesheet changes.
type Engine struct {
	sheet  *Stylesheet
	styles map[string]ComputedStyle
	font   rl.Font
}

// New returns an engine using the built-in editor stylesheet.
func New() *Engine {
	sheet, err := ParseCSSString(defaultCSS)
	if err != nil {
		panic(fmt.Sprintf("ui: built-in stylesheet: %v", err))
	}
	return &Engine{sheet: sheet, styles: make(map[string]ComputedStyle)}
}

// LoadCSS parses the stylesheet at path and appends its rules after the current ones, so they
// take precedence.
func (e *Engine) LoadCSS(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sheet, err := ParseCSS(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	e.sheet.Rules = append(e.sheet.Rules, sheet.Rules...)
	e.styles = make(map[string]ComputedStyle)
	return nil
}

// Stylesheet returns the current stylesheet.
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

// LoadFont loads a TTF font from path for text rendering. If loading fails the engine keeps its
// current font. Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when raylib's default font is in use.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Style returns the computed style of n. Rules matching n's class or id apply in sheet order.
func (e *Engine) Style(n *Node) ComputedStyle {
	key := n.Class + "#" + n.ID
	if st, ok := e.styles[key]; ok {
		return st
	}
	merged := make(map[string]string)
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		if (sel[0] == '.' && sel[1:] == n.Class) || (sel[0] == '#' && sel[1:] == n.ID) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	st := ResolveProps(merged)
	e.styles[key] = st
	return st
}

// Layout sets the bounds of every node whose style sizes or positions it. Percent offsets are
// resolved against the screen minus the node's own size.
func (e *Engine) Layout(nodes []*Node) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for _, n := range nodes {
		st := e.Style(n)
		if st.Width > 0 {
			n.Bounds.Width = float32(st.Width)
		}
		if st.Height > 0 {
			n.Bounds.Height = float32(st.Height)
		}
		if !st.Positioned {
			continue
		}
		x, y := st.Left, st.Top
		if st.LeftPct >= 0 {
			x = (screenW - int32(n.Bounds.Width)) * st.LeftPct / 100
		}
		if st.TopPct >= 0 {
			y = (screenH - int32(n.Bounds.Height)) * st.TopPct / 100
		}
		n.Bounds.X, n.Bounds.Y = float32(x), float32(y)
	}
}

// Stack lays rows out top to bottom inside panel and grows the panel to fit them.
func (e *Engine) Stack(panel *Node, rows []*Node) {
	pad := float32(e.Style(panel).Padding)
	y := panel.Bounds.Y + pad
	for _, r := range rows {
		st := e.Style(r)
		h := float32(st.FontSize + 2*st.Padding)
		r.Bounds = rl.Rectangle{X: panel.Bounds.X + pad, Y: y, Width: panel.Bounds.Width - 2*pad, Height: h}
		y += h
	}
	if e.Style(panel).Height == 0 {
		panel.Bounds.Height = y + pad - panel.Bounds.Y
	}
}

// Draw draws background, border and text of each node. Call Layout (and Stack) first.
func (e *Engine) Draw(nodes []*Node) {
	for _, n := range nodes {
		st := e.Style(n)
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)
		bg := st.Background
		if n.Fill != nil {
			bg = *n.Fill
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, st.Border)
		}
		if n.Text == "" {
			continue
		}
		tx, ty := x+st.Padding, y+st.Padding
		if e.font.Texture.ID != 0 {
			rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(tx), float32(ty)), float32(st.FontSize), 1, st.Color)
		} else {
			rl.DrawText(n.Text, tx, ty, st.FontSize, st.Color)
		}
	}
}

// Unload releases the loaded font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}
