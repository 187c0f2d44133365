package primitives

// PrimitiveDef is the YAML definition for a default primitive (e.g. defs/cube.yaml).
// Sizes are in world units, rotation is in degrees, color is a #rrggbb hex string.
type PrimitiveDef struct {
	Type        string     `yaml:"type"`
	Name        string     `yaml:"name"`
	Size        [3]float32 `yaml:"size,omitempty"`
	Radius      float32    `yaml:"radius,omitempty"`
	Segments    int        `yaml:"segments,omitempty"`
	Rings       int        `yaml:"rings,omitempty"`
	Position    [3]float32 `yaml:"position,omitempty"`
	Rotation    [3]float32 `yaml:"rotation,omitempty"`
	Color       string     `yaml:"color,omitempty"`
	DoubleSided bool       `yaml:"doubleSided,omitempty"`
}
