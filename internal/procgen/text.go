package procgen

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// Rule builds an entity when its keyword occurs in the lower-cased input.
type Rule struct {
	Keyword string
	Build   func(text string) entity.Entity
}

// MaxFallbackBoxes caps the size of the fallback stack.
const MaxFallbackBoxes = 5

var (
	houseTemplate = Template{
		Name: "House",
		Kind: entity.KindHouse,
		Parts: []Part{
			{Name: "Body", Shape: geom.Box(2, 1.2, 1.4), Color: 0xffcc99, Position: geom.V3(0, 0.6, 0)},
			{Name: "Roof", Shape: geom.Cone(1.4, 0.8, 4), Color: 0x993333, Position: geom.V3(0, 1.4, 0), Rotation: geom.V3(0, math32.Pi/4, 0)},
		},
	}
	treeTemplate = Template{
		Name: "Tree",
		Kind: entity.KindTree,
		Parts: []Part{
			{Name: "Trunk", Shape: geom.Cylinder(0.15, 0.15, 0.8, 32), Color: 0x8b5a2b, Position: geom.V3(0, 0.4, 0)},
			{Name: "Leaves", Shape: geom.Cone(0.8, 1.0, 16), Color: 0x228b22, Position: geom.V3(0, 1.1, 0)},
		},
	}
	lampTemplate = Template{
		Name: "Lamp",
		Kind: entity.KindLamp,
		Parts: []Part{
			{Name: "Base", Shape: geom.Cylinder(0.05, 0.05, 0.5, 32), Color: 0xaaaaaa, Position: geom.V3(0, 0.25, 0)},
			{Name: "Bulb", Shape: geom.Sphere(0.15, 16, 12), Color: 0xffffcc, Emissive: 0xffff99, EmissiveIntensity: 0.6, Position: geom.V3(0, 0.6, 0)},
		},
	}
)

func fromTemplate(t Template) func(string) entity.Entity {
	return func(string) entity.Entity { return t.Clone().Instantiate() }
}

// Rules is the keyword table in priority order. The first matching rule wins; when none
// matches, Fallback is used.
var Rules = []Rule{
	{Keyword: "house", Build: fromTemplate(houseTemplate)},
	{Keyword: "tree", Build: fromTemplate(treeTemplate)},
	{Keyword: "lamp", Build: fromTemplate(lampTemplate)},
}

// Templates returns deep copies of the keyword templates, keyed by keyword.
func Templates() map[string]Template {
	return map[string]Template{
		"house": houseTemplate.Clone(),
		"tree":  treeTemplate.Clone(),
		"lamp":  lampTemplate.Clone(),
	}
}

// FromText builds an entity from a free-form description. It returns false for empty or
// whitespace-only input.
func FromText(text string) (entity.Entity, bool) {
	text = cases.Lower(language.Und).String(text)
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	for _, r := range Rules {
		if strings.Contains(text, r.Keyword) {
			return r.Build(text), true
		}
	}
	return Fallback(text), true
}

// Fallback stacks one box per word plus one, up to MaxFallbackBoxes, each step shifted right and
// up with its hue rotated by a sixth of the color wheel.
func Fallback(text string) entity.Entity {
	n := min(MaxFallbackBoxes, len(strings.Fields(text))+1)
	t := Template{Name: "AI_Fallback", Kind: entity.KindTextStack}
	for i := 0; i < n; i++ {
		c := colorful.Hsl(float64(i)/6*360, 0.6, 0.6)
		t.Parts = append(t.Parts, Part{
			Name:     "Block_" + strconv.Itoa(i+1),
			Shape:    geom.Box(0.6, 0.4, 0.6),
			Color:    entity.HexValue(c),
			Position: geom.V3(float32(i-1)*0.7, 0.2+float32(i)*0.25, 0),
		})
	}
	return t.Instantiate()
}
