package sceneio

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Serialize writes the document for entities. Entities without an identifier are skipped.
func Serialize(entities []entity.Entity) ([]byte, error) {
	doc := Document{Version: Version, Objects: make([]Record, 0, len(entities))}
	for _, e := range entities {
		if e == nil || e.ID() == "" {
			continue
		}
		doc.Objects = append(doc.Objects, recordOf(e))
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sceneio: %w", err)
	}
	return data, nil
}

func recordOf(e entity.Entity) Record {
	t := e.Transform()
	rec := Record{
		MetaID:   e.ID(),
		Name:     e.Name(),
		Type:     entity.BaseLabel(e),
		Kind:     string(e.Kind()),
		Position: components(t.Position),
		Rotation: components(t.Rotation),
		Scale:    components(t.Scale),
	}
	if m := e.SurfaceMaterial(); m != nil {
		c := entity.HexValue(m.Color)
		rec.UserData.Color = &c
		if uri, err := TextureDataURI(m.Texture); err == nil {
			rec.UserData.TextureDataURL = uri
		}
	}
	return rec
}

func components(v geom.Vec3) []float32 {
	return []float32{v[0], v[1], v[2]}
}

// TextureDataURI encodes tex as a PNG data URI.
func TextureDataURI(tex *entity.Texture) (string, error) {
	if tex == nil || tex.Image == nil {
		return "", fmt.Errorf("sceneio: no texture raster")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, tex.Image); err != nil {
		return "", fmt.Errorf("sceneio: encode texture: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
