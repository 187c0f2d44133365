// Package debug draws the status overlay in the top-right corner: frame rate, heap size and the
// editor state line.
package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	margin     = 12
	lineHeight = fontSize + 4
	// Text is rebuilt every updateInterval frames to limit allocations.
	updateInterval = 30
)

// Info is the editor state shown on the status line.
type Info struct {
	Objects  int
	Selected string
	Mode     string
	Grid     bool
}

func (i Info) String() string {
	sel := i.Selected
	if sel == "" {
		sel = "None"
	}
	grid := "off"
	if i.Grid {
		grid = "on"
	}
	return fmt.Sprintf("Objects: %d | Selected: %s | Mode: %s | Grid: %s", i.Objects, sel, i.Mode, grid)
}

// Overlay holds the overlay switches and the cached text. All lines are off by default.
type Overlay struct {
	ShowFPS    bool
	ShowMem    bool
	ShowStatus bool

	font       rl.Font
	frameCount uint32
	fpsText    string
	memText    string
	mem        runtime.MemStats
}

// New returns an overlay with every line hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetFont sets the font used to draw. A zero texture ID keeps raylib's default font.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// Lines returns the text lines the overlay would draw for info.
func (o *Overlay) Lines(info Info) []string {
	var lines []string
	if o.ShowFPS && o.fpsText != "" {
		lines = append(lines, o.fpsText)
	}
	if o.ShowMem && o.memText != "" {
		lines = append(lines, o.memText)
	}
	if o.ShowStatus {
		lines = append(lines, info.String())
	}
	return lines
}

// Draw renders the enabled lines right-aligned. Call after the scene and terminal.
func (o *Overlay) Draw(info Info) {
	o.frameCount++
	refresh := o.frameCount%updateInterval == 0
	if o.ShowFPS && (refresh || o.fpsText == "") {
		o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if o.ShowMem && (refresh || o.memText == "") {
		runtime.ReadMemStats(&o.mem)
		o.memText = fmt.Sprintf("Mem: %.2f MiB", float64(o.mem.Alloc)/(1024*1024))
	}

	screenW := float32(rl.GetScreenWidth())
	y := float32(rl.GetScreenHeight()) - margin - lineHeight
	lines := o.Lines(info)
	for i := len(lines) - 1; i >= 0; i-- {
		text := lines[i]
		if o.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(o.font, text, fontSize, 1).X
			rl.DrawTextEx(o.font, text, rl.NewVector2(screenW-w-margin, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-margin), int32(y), fontSize, rl.Green)
		}
		y -= lineHeight
	}
}
