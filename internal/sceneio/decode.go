package sceneio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/tdewolff/parse/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Deserialize rebuilds entities from a document. A document that does not parse returns an
// error wrapping ErrMalformed and no result. Records that cannot be rebuilt are skipped and
// reported in Result.Errors.
func Deserialize(data []byte) (*Result, error) {
	var doc *struct {
		Version int               `json:"version"`
		Objects []json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: null document", ErrMalformed)
	}
	res := &Result{}
	for i, raw := range doc.Objects {
		if string(bytes.TrimSpace(raw)) == "null" {
			res.Errors = append(res.Errors, fmt.Errorf("sceneio: object %d: null record", i))
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("sceneio: object %d: %w", i, err))
			continue
		}
		e, err := Rebuild(rec)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("sceneio: object %d: %w", i, err))
			continue
		}
		res.Entities = append(res.Entities, e)
		if rec.UserData.TextureDataURL != "" {
			res.Textures = append(res.Textures, TextureJob{Target: e, DataURI: rec.UserData.TextureDataURL})
		}
	}
	return res, nil
}

// Rebuild constructs the entity for one record. The shape comes from the name: "sphere" gives a
// sphere of radius 0.6, "plane" a double-sided 2×2 plane, anything else a unit cube. Missing
// vectors keep the identity transform; vectors of the wrong length are an error.
func Rebuild(rec Record) (entity.Entity, error) {
	t := entity.NewTransform()
	for _, v := range []struct {
		name string
		src  []float32
		dst  *geom.Vec3
	}{
		{"position", rec.Position, &t.Position},
		{"rotation", rec.Rotation, &t.Rotation},
		{"scale", rec.Scale, &t.Scale},
	} {
		if v.src == nil {
			continue
		}
		if len(v.src) != 3 {
			return nil, fmt.Errorf("%s has %d components, want 3", v.name, len(v.src))
		}
		copy(v.dst[:], v.src)
	}

	name := rec.Name
	if name == "" {
		name = "Imported"
	}
	mtl := entity.NewMaterial(entity.Hex(0xffffff))
	var shape geom.Shape
	switch n := cases.Lower(language.Und).String(name); {
	case strings.Contains(n, "sphere"):
		shape = geom.Sphere(0.6, 32, 24)
	case strings.Contains(n, "plane"):
		shape = geom.Plane(2, 2)
		mtl.DoubleSided = true
	default:
		shape = geom.Box(1, 1, 1)
	}
	if rec.UserData.Color != nil {
		mtl.Color = entity.Hex(*rec.UserData.Color & 0xffffff)
	}
	kind := entity.Kind(rec.Kind)
	if kind == "" {
		kind = entity.KindImported
	}

	p := entity.NewPrimitive(name, kind, shape, mtl)
	p.SetID(rec.MetaID)
	*p.Transform() = t
	return p, nil
}

// TextureJob is a texture waiting to be decoded and attached to Target.
type TextureJob struct {
	Target  entity.Entity
	DataURI string
}

// Decode parses the data URI and decodes the image it carries.
func (j TextureJob) Decode() (*entity.Texture, error) {
	_, data, err := parse.DataURI([]byte(j.DataURI))
	if err != nil {
		return nil, fmt.Errorf("sceneio: texture of %s: %w", j.Target.ID(), err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sceneio: texture of %s: %w", j.Target.ID(), err)
	}
	return &entity.Texture{Image: clone.AsRGBA(img)}, nil
}

// Apply attaches tex to the target's surface material, if it has one.
func (j TextureJob) Apply(tex *entity.Texture) bool {
	m := j.Target.SurfaceMaterial()
	if m == nil {
		return false
	}
	m.Texture = tex
	return true
}
