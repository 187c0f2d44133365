// Package render draws the scene with raylib: the viewport (camera, grid and entity meshes) and
// the manipulation gizmo. It also converts between geom and raylib types.
package render

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

var background = rl.NewColor(30, 32, 36, 255)

// Run opens the window and runs the main loop. Each frame it calls update, then clears the
// screen and calls draw. unload, if not nil, runs before the window closes so GPU resources can
// be released. ESC does not quit; close via the window button.
func Run(title string, update, draw, unload func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, title)
	defer rl.CloseWindow()
	if unload != nil {
		defer unload()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
