package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// reversedSuffix selects the reversed order of a named palette (matplotlib style).
const reversedSuffix = "_r"

// DefaultName is the palette used when nothing else is configured.
// Cold colours come first, hot colours last.
const DefaultName = "RdYlBu_r"

// Palette is an ordered list of colours. The order is meaningful: index 0 is
// used for the lowest bucket, the last index for the highest.
type Palette []colorful.Color

// ColorBrewer 11-class diverging schemes, listed from the "hot" end.
var named = map[string][]string{
	"RdYlBu": {
		"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090",
		"#ffffbf", "#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695",
	},
	"RdBu": {
		"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7",
		"#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061",
	},
	"Spectral": {
		"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b",
		"#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2",
	},
}

// Parse builds a palette from hex colour strings ("#rrggbb").
func Parse(hexes ...string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, fmt.Errorf("palette needs at least one colour")
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("invalid palette colour %q: %w", h, err)
		}
		p = append(p, c)
	}
	return p, nil
}

// MustParse is like Parse but panics on error. Only for package-level literals.
func MustParse(hexes ...string) Palette {
	p, err := Parse(hexes...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseList parses a comma-separated list such as "#000000,#ffffff".
func ParseList(list string) (Palette, error) {
	var hexes []string
	for _, h := range strings.Split(list, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hexes = append(hexes, h)
		}
	}
	return Parse(hexes...)
}

// Named returns a built-in palette. A "_r" suffix reverses it.
func Named(name string) (Palette, bool) {
	base, reversed := strings.CutSuffix(name, reversedSuffix)
	hexes, ok := named[base]
	if !ok {
		return nil, false
	}
	p := MustParse(hexes...)
	if reversed {
		p = p.Reverse()
	}
	return p, true
}

// Names lists the built-in palette names, without the reversed variants.
func Names() []string {
	return []string{"RdBu", "RdYlBu", "Spectral"}
}

// Default returns the default cold-to-hot palette.
func Default() Palette {
	p, _ := Named(DefaultName)
	return p
}

// Reverse returns a reversed copy; the receiver is left untouched.
func (p Palette) Reverse() Palette {
	out := make(Palette, len(p))
	for i, c := range p {
		out[len(p)-1-i] = c
	}
	return out
}

// Hex returns the colours as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// IndexOf returns the first index of c, or -1.
func (p Palette) IndexOf(c colorful.Color) int {
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

// TextColor picks black or white for text drawn on top of c.
func TextColor(c colorful.Color) string {
	r, g, b := c.RGB255()
	// Standard luminance formula: 0.299R + 0.587G + 0.114B
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if lum < 128 {
		return "white"
	}
	return "black"
}
