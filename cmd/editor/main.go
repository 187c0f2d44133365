package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-editor/internal/commands"
	"scene-editor/internal/debug"
	"scene-editor/internal/editor"
	"scene-editor/internal/editorconfig"
	"scene-editor/internal/entity"
	"scene-editor/internal/env"
	"scene-editor/internal/fonts"
	"scene-editor/internal/logger"
	"scene-editor/internal/render"
	"scene-editor/internal/scene"
	"scene-editor/internal/storage"
	"scene-editor/internal/terminal"
	"scene-editor/internal/ui"
)

func main() {
	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}
	prefs, _ := editorconfig.Load(editorconfig.DefaultPath)
	prefs = prefs.ApplyEnv()

	log := logger.New(prefs.LogPath)
	store, err := storage.OpenDir(prefs.StorageDir)
	if err != nil {
		log.Logf("%v; scenes will not persist", err)
		store = nil
	}

	gizmo := render.NewGizmo()
	view := render.NewViewport(gizmo)
	view.GridVisible = prefs.GridVisible
	gui := ui.New()
	if prefs.StylePath != "" {
		if err := gui.LoadCSS(prefs.StylePath); err != nil {
			log.Logf("stylesheet: %v", err)
		}
	}
	overlay := ui.NewOverlay(gui)

	sess, err := editor.New(editor.Options{
		Graph:  view,
		List:   overlay,
		Handle: gizmo,
		Panel:  overlay,
		Grid:   view,
		Store:  store,
		Log:    log,
		Mode:   scene.HandleMode(prefs.HandleMode),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer sess.Close()
	sess.Seed()

	reg := commands.NewRegistry()
	editor.RegisterCommands(reg, sess)
	term := terminal.New(log, reg)
	term.OnText = func(line string) {
		if _, ok := sess.GenerateFromText(line); !ok {
			log.Log("nothing to generate; type \"cmd help\" for commands")
		}
	}
	status := debug.New()
	status.ShowFPS = prefs.ShowStatus
	status.ShowStatus = prefs.ShowStatus

	in := &input{sess: sess, view: view, gizmo: gizmo, overlay: overlay, term: term}
	fontsLoaded := false

	update := func() {
		if !fontsLoaded {
			fontsLoaded = true
			loadFont(prefs.FontPath, gui, term, status, log)
		}
		sess.Drain()
		in.update()
	}
	draw := func() {
		view.Draw()
		overlay.Draw(sess.Selected())
		term.Draw()
		info := debug.Info{Objects: sess.Registry().Len(), Mode: string(sess.Mode()), Grid: view.GridVisible}
		if sel := sess.Selected(); sel != nil {
			info.Selected = fmt.Sprintf("%s (%s)", entity.Label(sel), sel.ID())
		}
		status.Draw(info)
	}
	unload := func() {
		view.Unload()
		gui.Unload()
	}
	log.Log("scene editor ready; press ESC for the terminal")
	render.Run("Scene Editor", update, draw, unload)

	prefs.GridVisible = view.GridVisible
	prefs.HandleMode = string(sess.Mode())
	if err := editorconfig.Save(editorconfig.DefaultPath, prefs); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
}

// loadFont loads the preferred UI font once the window exists. Failures keep raylib's default.
func loadFont(name string, gui *ui.Engine, term *terminal.Terminal, status *debug.Overlay, log *logger.Logger) {
	if name == "" {
		return
	}
	path, err := fonts.Resolve(name)
	if err != nil {
		log.Logf("font %q not found", name)
		return
	}
	if err := gui.LoadFont(path); err != nil {
		log.Logf("font %s: %v", path, err)
		return
	}
	term.SetFont(gui.Font())
	status.SetFont(gui.Font())
	rl.SetTextureFilter(gui.Font().Texture, rl.FilterBilinear)
}
