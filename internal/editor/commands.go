package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"scene-editor/internal/commands"
	"scene-editor/internal/entity"
	"scene-editor/internal/export"
)

// RegisterCommands binds the terminal "cmd" verbs to s. Paths are relative to the working
// directory.
func RegisterCommands(reg *commands.Registry, s *Session) {
	simple := func(name, help string, run func() error) {
		reg.Register(name, help, commands.NewFlagSet(name), run)
	}
	withArgs := func(name, help string, run func(args []string) error) {
		fs := commands.NewFlagSet(name)
		reg.Register(name, help, fs, func() error { return run(fs.Args()) })
	}

	simple("box", "box: add a cube", func() error { s.AddBox(); return nil })
	simple("sphere", "sphere: add a sphere", func() error { s.AddSphere(); return nil })
	simple("plane", "plane: add a plane", func() error { s.AddPlane(); return nil })
	withArgs("text", "text <description>: generate an object from a description", func(args []string) error {
		if _, ok := s.GenerateFromText(strings.Join(args, " ")); !ok {
			return errors.New("text: empty description")
		}
		return nil
	})
	withArgs("image", "image <path>: generate a textured object from an image file", func(args []string) error {
		if len(args) != 1 {
			return errors.New("image: want one path")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		done := s.GenerateFromImage(context.Background(), f)
		go func() {
			<-done
			f.Close()
		}()
		return nil
	})
	withArgs("fetch", "fetch <url>: generate a textured object from an image URL", func(args []string) error {
		if len(args) != 1 {
			return errors.New("fetch: want one URL")
		}
		s.FetchImage(context.Background(), args[0])
		return nil
	})
	withArgs("color", "color <#rrggbb>: set the color of the selection", func(args []string) error {
		if len(args) != 1 {
			return errors.New("color: want one #rrggbb value")
		}
		return s.SetColor(args[0])
	})
	withArgs("mode", "mode <translate|rotate|scale>: switch the handle mode", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("mode: current mode is %s", s.Mode())
		}
		return s.SetMode(args[0])
	})
	withArgs("select", "select <id>: select an object by id (no id clears)", func(args []string) error {
		if len(args) == 0 {
			s.Select(nil)
			return nil
		}
		return s.SelectID(args[0])
	})
	simple("delete", "delete: remove the selection", s.DeleteSelected)

	exportFS := commands.NewFlagSet("export")
	format := exportFS.String("format", "glb", "glb, obj or json")
	out := exportFS.String("out", "", "output path (default scene.<format>)")
	reg.Register("export", "export --format glb|obj|json [--out path]: write the scene to a file", exportFS, func() error {
		defer func() { *format, *out = "glb", "" }()
		exp, err := export.Lookup(*format)
		if err != nil {
			return err
		}
		path := *out
		if path == "" {
			path = "scene" + exp.Ext
		}
		return s.ExportFile(exp.Name, path)
	})

	simple("save", "save: save the scene to local storage", s.SaveLocal)
	simple("load", "load: load the scene from local storage", s.LoadLocal)
	withArgs("import", "import <path>: replace the scene with a saved JSON file", func(args []string) error {
		if len(args) != 1 {
			return errors.New("import: want one path")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		return s.ImportJSON(data)
	})
	simple("list", "list: print the objects in the scene", func() error {
		all := s.Registry().All()
		if len(all) == 0 {
			s.Log().Log("scene is empty")
		}
		for _, e := range all {
			mark := " "
			if e == s.Selected() {
				mark = "*"
			}
			s.Log().Logf("%s %s - %s", mark, displayType(e), e.ID())
		}
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	show := gridFS.Bool("show", false, "show the grid")
	hide := gridFS.Bool("hide", false, "hide the grid")
	reg.Register("grid", "grid --show|--hide: toggle the ground grid", gridFS, func() error {
		defer func() { *show, *hide = false, false }()
		if *show == *hide {
			return errors.New("grid: pass exactly one of --show or --hide")
		}
		s.SetGridVisible(*show)
		return nil
	})

	simple("help", "help: list commands", func() error {
		for _, name := range reg.Names() {
			h, _ := reg.Help(name)
			s.Log().Log(h)
		}
		return nil
	})
}

func displayType(e entity.Entity) string {
	if e.Name() != "" {
		return e.Name()
	}
	return entity.BaseLabel(e)
}

// ExportFile writes the scene in the named format to path.
func (s *Session) ExportFile(format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	if err := s.Export(format, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	s.log.Logf("exported %d objects to %s", s.reg.Len(), path)
	return nil
}
