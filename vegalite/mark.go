// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"github.com/aclements/ggvl/plot"
)

// marks maps geoms to Vega-Lite mark types. Geoms not listed render
// as points.
var marks = map[plot.Geom]string{
	plot.Point:     "point",
	plot.Line:      "line",
	plot.Path:      "line",
	plot.Polygon:   "line",
	plot.Smooth:    "line",
	plot.Bar:       "bar",
	plot.ColGeom:   "bar",
	plot.Histogram: "bar",
	plot.Area:      "area",
	plot.Ribbon:    "area",
	plot.Density:   "area",
	plot.Violin:    "area",
	plot.Tile:      "rect",
	plot.Rect:      "rect",
	plot.Text:      "text",
	plot.LabelGeom: "text",
	plot.Segment:   "rule",
	plot.ErrorBar:  "rule",
	plot.Rule:      "rule",
	plot.HLine:     "rule",
	plot.VLine:     "rule",
	plot.Boxplot:   "boxplot",
}

// MarkType returns the Vega-Lite mark type of g. Boxplots are
// composite and return "boxplot".
func MarkType(g plot.Geom) string {
	if m, ok := marks[g]; ok {
		return m
	}
	return "point"
}

// markDef returns the mark definition of layer l.
func markDef(l *plot.Layer, mark string) obj {
	m := obj{"type": mark, "clip": true}
	switch l.Geom {
	case plot.Point:
		m["filled"] = true
	case plot.Bar, plot.ColGeom, plot.Histogram:
		if w, ok := toFloat(l.Param("width")); ok {
			m["width"] = obj{"band": w}
		}
	case plot.Violin:
		m["orient"] = "horizontal"
	case plot.Polygon:
		m["interpolate"] = "linear-closed"
	case plot.Text, plot.LabelGeom:
		if v, ok := toFloat(l.Param("nudge_x")); ok {
			m["dx"] = v * pointsToPixels
		}
		if v, ok := toFloat(l.Param("nudge_y")); ok {
			m["dy"] = -v * pointsToPixels
		}
		if l.Geom == plot.LabelGeom {
			m["baseline"] = "middle"
		}
	}
	for _, name := range []string{"family", "fontface"} {
		v, ok := l.Mappings[name]
		if !ok || !v.IsLiteral {
			continue
		}
		s, _ := v.Literal.(string)
		switch name {
		case "family":
			m["font"] = s
		case "fontface":
			switch s {
			case "bold":
				m["fontWeight"] = "bold"
			case "italic":
				m["fontStyle"] = "italic"
			case "bold.italic", "bolditalic":
				m["fontWeight"] = "bold"
				m["fontStyle"] = "italic"
			}
		}
	}
	return m
}

// layerTransforms returns the Vega-Lite transforms computing a
// layer's geometry in the renderer.
func layerTransforms(l *plot.Layer, groupBy []string) []interface{} {
	if l.Geom != plot.Smooth {
		return nil
	}
	x, okx := l.Mappings.Column("x")
	y, oky := l.Mappings.Column("y")
	if !okx || !oky {
		return nil
	}
	t := obj{"on": x}
	switch method, _ := l.Param("method").(string); method {
	case "lm", "linear":
		t["regression"] = y
	case "poly", "exp", "pow", "log", "quad":
		t["regression"] = y
		t["method"] = method
	default:
		t["loess"] = y
		if bw, ok := toFloat(l.Param("bandwidth")); ok {
			t["bandwidth"] = bw
		}
	}
	if len(groupBy) > 0 {
		t["groupby"] = groupBy
	}
	return []interface{}{t}
}
