// Package export writes the scene in interchange formats: binary glTF, Wavefront OBJ and the
// editor's own JSON document.
package export

import (
	"fmt"
	"io"
	"sort"

	"scene-editor/internal/entity"
	"scene-editor/internal/sceneio"
)

// Exporter writes a list of top-level entities to w.
type Exporter struct {
	Name   string
	Ext    string
	Export func(w io.Writer, entities []entity.Entity) error
}

var formats = map[string]Exporter{
	"glb":  {Name: "glb", Ext: ".glb", Export: GLB},
	"obj":  {Name: "obj", Ext: ".obj", Export: OBJ},
	"json": {Name: "json", Ext: ".json", Export: JSON},
}

// Lookup returns the exporter for a format name.
func Lookup(name string) (Exporter, error) {
	e, ok := formats[name]
	if !ok {
		return Exporter{}, fmt.Errorf("export: unknown format %q (have %v)", name, Names())
	}
	return e, nil
}

// Names lists the format names in lexical order.
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// JSON writes the saved-scene document.
func JSON(w io.Writer, entities []entity.Entity) error {
	data, err := sceneio.Serialize(entities)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}
