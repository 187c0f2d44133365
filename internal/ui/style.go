package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Rule pairs one simple selector (".objects" or "#title") with raw property values.
type Rule struct {
	Selector string
	Props    map[string]string
}

// Stylesheet is an ordered rule list; a later rule overrides an earlier one.
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for drawing. LeftPct and TopPct are -1 unless a
// percentage was given, in which case they win over Left and Top.
// Positioned is false when neither left nor top was given; the node keeps the bounds its owner
// laid out.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Positioned bool
	Padding    int32
	FontSize   int32
}

// DefaultComputedStyle returns a minimal style: transparent background, white text, no border.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// ParseHexColor parses #RGB or #RRGGBB into an opaque rl.Color. It returns rl.Black and false
// on a parse error.
func ParseHexColor(s string) (rl.Color, bool) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return rl.Black, false
	}
	r, g, b := c.RGB255()
	return rl.NewColor(r, g, b, 255), true
}

// ParsePx parses a length such as "12", "12px" or "12.5px" and truncates it to whole pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return int32(f), true
}

// ParsePct parses "N%" with N in 0..100.
func ParsePct(s string) (int32, bool) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// borderColor takes the color out of a shorthand like "1px solid #555".
func borderColor(v string) (rl.Color, bool) {
	for _, f := range strings.Fields(v) {
		if c, ok := ParseHexColor(f); ok {
			return c, true
		}
	}
	return rl.Black, false
}

type propSetter func(out *ComputedStyle, v string)

func colorProp(dst func(*ComputedStyle) *rl.Color) propSetter {
	return func(out *ComputedStyle, v string) {
		if c, ok := ParseHexColor(v); ok {
			*dst(out) = c
		}
	}
}

func offsetProp(px func(*ComputedStyle) *int32, pct func(*ComputedStyle) *int32) propSetter {
	return func(out *ComputedStyle, v string) {
		if n, ok := ParsePct(v); ok {
			*pct(out), out.Positioned = n, true
		} else if n, ok := ParsePx(v); ok {
			*px(out), out.Positioned = n, true
		}
	}
}

func lengthProp(dst func(*ComputedStyle) *int32, least int32) propSetter {
	return func(out *ComputedStyle, v string) {
		if n, ok := ParsePx(v); ok && n >= least {
			*dst(out) = n
		}
	}
}

var props = map[string]propSetter{
	"background": colorProp(func(s *ComputedStyle) *rl.Color { return &s.Background }),
	"color":      colorProp(func(s *ComputedStyle) *rl.Color { return &s.Color }),
	"border": func(out *ComputedStyle, v string) {
		if c, ok := borderColor(v); ok {
			out.Border, out.HasBorder = c, true
		}
	},
	"width":     lengthProp(func(s *ComputedStyle) *int32 { return &s.Width }, 0),
	"height":    lengthProp(func(s *ComputedStyle) *int32 { return &s.Height }, 0),
	"padding":   lengthProp(func(s *ComputedStyle) *int32 { return &s.Padding }, 0),
	"font-size": lengthProp(func(s *ComputedStyle) *int32 { return &s.FontSize }, 1),
	"left": offsetProp(
		func(s *ComputedStyle) *int32 { return &s.Left },
		func(s *ComputedStyle) *int32 { return &s.LeftPct }),
	"top": offsetProp(
		func(s *ComputedStyle) *int32 { return &s.Top },
		func(s *ComputedStyle) *int32 { return &s.TopPct }),
}

// ResolveProps builds a ComputedStyle from merged rule properties. Unknown properties and
// unparsable values are ignored.
func ResolveProps(in map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range in {
		if set, ok := props[strings.ToLower(k)]; ok {
			set(&out, strings.TrimSpace(v))
		}
	}
	return out
}
