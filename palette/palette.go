// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palette provides named color and shape palettes and color
// manipulation for scale output ranges.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette/brewer"
)

// Tableau10 is the default categorical color palette.
var Tableau10 = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Category10 is the D3 categorical color palette.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Sequential palettes sampled at ten points.
var (
	Viridis = []string{
		"#440154", "#482878", "#3e4a89", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	}
	Plasma = []string{
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921",
	}
	Magma = []string{
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf",
	}
	Inferno = []string{
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4",
	}
	Cividis = []string{
		"#00224e", "#123570", "#3b496c", "#575d6d", "#707173",
		"#8a8678", "#a59c74", "#c3b369", "#e1cc55", "#fdea45",
	}
)

// Shapes is the default shape palette. Every entry is a native
// Vega-Lite symbol.
var Shapes = []string{
	"circle",
	"square",
	"cross",
	"diamond",
	"triangle-up",
	"triangle-down",
	"triangle-left",
	"triangle-right",
}

var named = map[string][]string{
	"tableau10":  Tableau10,
	"tableau":    Tableau10,
	"default":    Tableau10,
	"category10": Category10,
	"viridis":    Viridis,
	"sequential": Viridis,
	"plasma":     Plasma,
	"magma":      Magma,
	"inferno":    Inferno,
	"cividis":    Cividis,
}

// brewerIndex maps lower-cased ColorBrewer names to their canonical
// names in brewer.ByName.
var brewerIndex = func() map[string]string {
	m := make(map[string]string, len(brewer.ByName))
	for name := range brewer.ByName {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// Lookup returns the colors of the named palette. Names are case
// insensitive. ColorBrewer palettes are returned at their largest
// number of levels.
func Lookup(name string) ([]string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := named[key]; ok {
		return p, true
	}
	bname, ok := brewerIndex[key]
	if !ok {
		return nil, false
	}
	levels := brewer.ByName[bname]
	best := 0
	for n := range levels {
		if n > best {
			best = n
		}
	}
	var out []string
	for _, c := range levels[best] {
		out = append(out, hexOf(color.RGBAModel.Convert(c).(color.RGBA)))
	}
	return out, len(out) > 0
}

// Names returns the names accepted by Lookup, sorted.
func Names() []string {
	var out []string
	for name := range named {
		out = append(out, name)
	}
	for name := range brewerIndex {
		if _, ok := named[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// LookupShapes returns the named shape palette.
func LookupShapes(name string) ([]string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shapes", "default":
		return Shapes, true
	}
	return nil, false
}

// Expand cycles pal to exactly n entries.
func Expand(pal []string, n int) []string {
	if len(pal) == 0 || n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = pal[i%len(pal)]
	}
	return out
}

// IsColorAesthetic reports whether aes names a color channel.
func IsColorAesthetic(aes string) bool {
	switch aes {
	case "color", "col", "colour", "fill", "stroke":
		return true
	}
	return false
}

var dashes = map[string][]float64{
	"solid":    {1, 0},
	"dashed":   {4, 4},
	"dotted":   {1, 3},
	"dotdash":  {1, 3, 4, 3},
	"longdash": {7, 3},
	"twodash":  {2, 2, 6, 2},
}

// Linetypes is the default linetype palette.
var Linetypes = []string{"solid", "dashed", "dotted", "dotdash", "longdash", "twodash"}

// StrokeDash returns the dash array for a named linetype.
// Hexadecimal dash specifications such as "44" or "1343" are also
// accepted.
func StrokeDash(linetype string) ([]float64, bool) {
	lt := strings.ToLower(linetype)
	if d, ok := dashes[lt]; ok {
		return d, true
	}
	if len(lt) == 0 || len(lt)%2 != 0 || len(lt) > 8 {
		return nil, false
	}
	var out []float64
	for _, r := range lt {
		var v int
		switch {
		case '1' <= r && r <= '9':
			v = int(r - '0')
		case 'a' <= r && r <= 'f':
			v = int(r-'a') + 10
		default:
			return nil, false
		}
		out = append(out, float64(v))
	}
	return out, true
}

var shapePaths = map[string]string{
	"star":     "M0,-1L0.2245,-0.309L0.9511,-0.309L0.3633,0.118L0.5878,0.809L0,0.382L-0.5878,0.809L-0.3633,0.118L-0.9511,-0.309L-0.2245,-0.309Z",
	"plus":     "M-0.2,-1H0.2V-0.2H1V0.2H0.2V1H-0.2V0.2H-1V-0.2H-0.2Z",
	"x":        "M-0.85,-0.57L-0.57,-0.85L0,-0.28L0.57,-0.85L0.85,-0.57L0.28,0L0.85,0.57L0.57,0.85L0,0.28L-0.57,0.85L-0.85,0.57L-0.28,0Z",
	"hexagon":  "M0,-1L0.866,-0.5L0.866,0.5L0,1L-0.866,0.5L-0.866,-0.5Z",
	"pentagon": "M0,-1L0.9511,-0.309L0.5878,0.809L-0.5878,0.809L-0.9511,-0.309Z",
}

func init() {
	shapePaths["times"] = shapePaths["x"]
}

// ShapePath returns an SVG path for shapes that are not native
// Vega-Lite symbols.
func ShapePath(shape string) (string, bool) {
	p, ok := shapePaths[strings.ToLower(shape)]
	return p, ok
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
