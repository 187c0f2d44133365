package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/h2non/filetype"

	"scene-editor/internal/editor"
	"scene-editor/internal/render"
	"scene-editor/internal/scene"
	"scene-editor/internal/terminal"
	"scene-editor/internal/ui"
)

// input routes one frame of keyboard and pointer input. The terminal gets the keyboard while it
// is open; the gizmo gets the pointer while it drags; otherwise clicks pick in the object list
// or the viewport.
type input struct {
	sess    *editor.Session
	view    *render.Viewport
	gizmo   *render.Gizmo
	overlay *ui.Overlay
	term    *terminal.Terminal
}

var modeKeys = map[int32]scene.HandleMode{
	rl.KeyW: scene.Translate,
	rl.KeyE: scene.Rotate,
	rl.KeyR: scene.Scale,
}

func (in *input) update() {
	in.dropped()
	in.term.Update()
	if !in.term.IsOpen() {
		in.shortcuts()
		in.gizmo.Update()
	}
	in.view.Update(!in.gizmo.Active())

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) || in.gizmo.Active() {
		return
	}
	p := rl.GetMousePosition()
	if id, ok := in.overlay.Objects.ItemAt(p.X, p.Y); ok {
		_ = in.sess.SelectID(id)
		return
	}
	if in.overlay.Covers(p.X, p.Y) {
		return
	}
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	in.sess.PickPointer(in.view.PickCamera(), p.X, p.Y, w, h)
}

func (in *input) shortcuts() {
	log := in.sess.Log()
	for k, m := range modeKeys {
		if rl.IsKeyPressed(k) {
			_ = in.sess.SetMode(string(m))
		}
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	switch {
	case rl.IsKeyPressed(rl.KeyDelete):
		if err := in.sess.DeleteSelected(); err != nil {
			log.Log(err.Error())
		}
	case rl.IsKeyPressed(rl.KeyG):
		in.sess.SetGridVisible(!in.view.GridVisible)
	case ctrl && rl.IsKeyPressed(rl.KeyS):
		if err := in.sess.SaveLocal(); err != nil {
			log.Log(err.Error())
		}
	case ctrl && rl.IsKeyPressed(rl.KeyO):
		if err := in.sess.LoadLocal(); err != nil {
			log.Log(err.Error())
		}
	case rl.IsKeyPressed(rl.KeyOne):
		in.sess.AddBox()
	case rl.IsKeyPressed(rl.KeyTwo):
		in.sess.AddSphere()
	case rl.IsKeyPressed(rl.KeyThree):
		in.sess.AddPlane()
	}
}

// dropped handles files dropped on the window: images become image entities, anything else is
// imported as a scene document.
func (in *input) dropped() {
	if !rl.IsFileDropped() {
		return
	}
	log := in.sess.Log()
	for _, path := range rl.LoadDroppedFiles() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Log(err.Error())
			continue
		}
		if filetype.IsImage(data) {
			log.Logf("generating from %s", filepath.Base(path))
			in.sess.GenerateFromImage(context.Background(), bytes.NewReader(data))
			continue
		}
		if err := in.sess.ImportJSON(data); err != nil {
			log.Logf("import %s: %v", filepath.Base(path), err)
		}
	}
	rl.UnloadDroppedFiles()
}
