// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"strings"
)

// Geom is a geometric object kind.
type Geom int

const (
	Point Geom = iota
	Line
	Path
	Bar
	ColGeom
	Area
	Ribbon
	Tile
	Polygon
	Segment
	Text
	LabelGeom
	ErrorBar
	Histogram
	Boxplot
	Density
	Violin
	Rect
	Rule
	HLine
	VLine
	Smooth
)

// GeomInfo describes what a geom accepts.
type GeomInfo struct {
	Name string

	// Supported lists the aesthetics the geom accepts.
	Supported []string

	// Required lists the aesthetics that must be mapped.
	Required []string

	// Params gives the accepted parameters and their defaults. A
	// nil default means "computed".
	Params map[string]interface{}

	// Stat indicates the geom rewrites its query with a
	// statistical transform.
	Stat bool

	// Composite indicates the geom renders as several marks over
	// one dataset.
	Composite bool
}

var (
	fillAes   = []string{"color", "fill", "stroke", "opacity"}
	strokeAes = []string{"color", "stroke", "linetype", "linewidth", "opacity"}
	textAes   = []string{"label", "color", "fill", "stroke", "opacity", "size", "family", "fontsize", "fontface", "angle"}
)

func aes(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var densityParams = map[string]interface{}{
	"bandwidth": nil,
	"adjust":    1.0,
	"kernel":    "gaussian",
}

var geomInfo = [...]GeomInfo{
	Point: {
		Name:      "point",
		Supported: aes([]string{"x", "y", "size", "shape", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
	},
	Line: {
		Name:      "line",
		Supported: aes([]string{"x", "y"}, strokeAes),
		Required:  []string{"x", "y"},
	},
	Path: {
		Name:      "path",
		Supported: aes([]string{"x", "y"}, strokeAes),
		Required:  []string{"x", "y"},
	},
	Bar: {
		Name:      "bar",
		Supported: aes([]string{"x", "y", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
		Params:    map[string]interface{}{"width": 0.9},
	},
	ColGeom: {
		Name:      "col",
		Supported: aes([]string{"x", "y", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
		Params:    map[string]interface{}{"width": 0.9},
	},
	Area: {
		Name:      "area",
		Supported: aes([]string{"x", "y", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
		Params:    map[string]interface{}{"stacking": "off"},
	},
	Ribbon: {
		Name:      "ribbon",
		Supported: aes([]string{"x", "ymin", "ymax", "linewidth"}, fillAes),
		Required:  []string{"x", "ymin", "ymax"},
	},
	Tile: {
		Name:      "tile",
		Supported: aes([]string{"x", "y", "xmin", "xmax", "ymin", "ymax"}, fillAes),
		Required:  []string{"x", "y"},
	},
	Polygon: {
		Name:      "polygon",
		Supported: aes([]string{"x", "y", "fill"}, strokeAes),
		Required:  []string{"x", "y"},
	},
	Segment: {
		Name:      "segment",
		Supported: aes([]string{"x", "y", "xend", "yend"}, strokeAes),
		Required:  []string{"x", "y", "xend", "yend"},
	},
	Text: {
		Name:      "text",
		Supported: aes([]string{"x", "y"}, textAes),
		Required:  []string{"x", "y", "label"},
		Params:    map[string]interface{}{"nudge_x": nil, "nudge_y": nil, "format": nil},
	},
	LabelGeom: {
		Name:      "label",
		Supported: aes([]string{"x", "y"}, textAes),
		Required:  []string{"x", "y", "label"},
		Params:    map[string]interface{}{"nudge_x": nil, "nudge_y": nil, "format": nil},
	},
	ErrorBar: {
		Name:      "errorbar",
		Supported: aes([]string{"x", "y", "xmin", "xmax", "ymin", "ymax"}, strokeAes),
	},
	Histogram: {
		Name:      "histogram",
		Supported: aes([]string{"x", "y", "linewidth"}, fillAes),
		Required:  []string{"x"},
	},
	Boxplot: {
		Name:      "boxplot",
		Supported: aes([]string{"x", "y", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
		Params: map[string]interface{}{
			"outliers":    true,
			"coef":        1.5,
			"orientation": nil,
			"width":       0.9,
		},
		Stat:      true,
		Composite: true,
	},
	Density: {
		Name:      "density",
		Supported: aes([]string{"x", "y", "weight", "linewidth"}, fillAes),
		Required:  []string{"x"},
		Params:    densityParams,
		Stat:      true,
	},
	Violin: {
		Name:      "violin",
		Supported: aes([]string{"x", "y", "weight", "linewidth"}, fillAes),
		Required:  []string{"x", "y"},
		Params:    densityParams,
		Stat:      true,
	},
	Rect: {
		Name:      "rect",
		Supported: aes([]string{"xmin", "xmax", "ymin", "ymax", "linewidth"}, fillAes),
		Required:  []string{"xmin", "xmax", "ymin", "ymax"},
	},
	Rule: {
		Name:      "rule",
		Supported: aes([]string{"x", "y", "xend", "yend"}, strokeAes),
	},
	HLine: {
		Name:      "hline",
		Supported: aes([]string{"y"}, strokeAes),
		Required:  []string{"y"},
	},
	VLine: {
		Name:      "vline",
		Supported: aes([]string{"x"}, strokeAes),
		Required:  []string{"x"},
	},
	Smooth: {
		Name:      "smooth",
		Supported: aes([]string{"x", "y"}, strokeAes),
		Required:  []string{"x", "y"},
		Params:    map[string]interface{}{"method": "loess", "bandwidth": 0.3},
	},
}

// Info returns g's description.
func (g Geom) Info() *GeomInfo {
	if g < 0 || int(g) >= len(geomInfo) {
		return &GeomInfo{Name: fmt.Sprintf("Geom(%d)", int(g))}
	}
	return &geomInfo[g]
}

func (g Geom) String() string {
	return g.Info().Name
}

// ParseGeom returns the geom named name.
func ParseGeom(name string) (Geom, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range geomInfo {
		if geomInfo[i].Name == name {
			return Geom(i), nil
		}
	}
	return 0, Validationf("unknown geom '%s'", name)
}

// Supports reports whether g accepts aesthetic aes.
func (g Geom) Supports(aes string) bool {
	for _, a := range g.Info().Supported {
		if a == Canonical(aes) {
			return true
		}
	}
	return false
}

// Default returns the default for parameter name and whether g
// accepts that parameter.
func (g Geom) Default(name string) (interface{}, bool) {
	v, ok := g.Info().Params[name]
	return v, ok
}
