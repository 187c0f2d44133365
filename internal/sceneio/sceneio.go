// Package sceneio converts the registry contents to and from the saved-scene JSON document:
//
//	{"version": 1, "objects": [{"metaId", "name", "type", "kind", "position", "rotation",
//	  "scale", "userData": {"color", "textureDataUrl"}}]}
//
// Field names match scenes saved by earlier versions of the editor, which carry no version and
// no kind. Shapes are not stored; import infers them from the display name.
package sceneio

import (
	"errors"

	"scene-editor/internal/entity"
)

// Version is written into every document. Documents without it are read the same way.
const Version = 1

// ErrMalformed is returned when a document is not a JSON object with an objects list.
var ErrMalformed = errors.New("sceneio: malformed scene document")

// Document is the saved-scene layout.
type Document struct {
	Version int      `json:"version,omitempty"`
	Objects []Record `json:"objects"`
}

// Record is one top-level entity.
type Record struct {
	MetaID   string    `json:"metaId"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Kind     string    `json:"kind,omitempty"`
	Position []float32 `json:"position"`
	Rotation []float32 `json:"rotation"`
	Scale    []float32 `json:"scale"`
	UserData UserData  `json:"userData"`
}

// UserData holds the optional surface fields of a record. Color is 0xRRGGBB.
type UserData struct {
	Color          *uint32 `json:"color,omitempty"`
	TextureDataURL string  `json:"textureDataUrl,omitempty"`
}

// Result is the outcome of Deserialize. Entities are ready to register; Textures are applied
// after decoding, which callers may do later. Errors holds one entry per skipped record.
type Result struct {
	Entities []entity.Entity
	Textures []TextureJob
	Errors   []error
}
