// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/aclements/ggvl/plot"
)

// specDoc is the YAML form of a plot.
//
//	title: Fuel economy
//	query: SELECT * FROM cars
//	layers:
//	  - geom: point
//	    aes: {x: wt, y: mpg, color: cyl}
//	    set: {size: 3}
//	scales:
//	  - aes: color
//	    type: discrete
//	    palette: set1
//	labels: {x: Weight}
type specDoc struct {
	Title   string              `yaml:"title"`
	Query   string              `yaml:"query"`
	Layers  []layerDoc          `yaml:"layers"`
	Scales  []scaleDoc          `yaml:"scales"`
	Facet   *facetDoc           `yaml:"facet"`
	Project *projectDoc         `yaml:"project"`
	Guides  map[string]guideDoc `yaml:"guides"`
	Labels  map[string]string   `yaml:"labels"`
}

type layerDoc struct {
	Geom        string                 `yaml:"geom"`
	Query       string                 `yaml:"query"`
	Aes         map[string]string      `yaml:"aes"`
	Set         map[string]interface{} `yaml:"set"`
	Params      map[string]interface{} `yaml:"params"`
	PartitionBy []string               `yaml:"partition_by"`
	Data        string                 `yaml:"data"`
}

type scaleDoc struct {
	Aes       string                 `yaml:"aes"`
	Type      string                 `yaml:"type"`
	Input     []interface{}          `yaml:"input"`
	Output    []interface{}          `yaml:"output"`
	Palette   string                 `yaml:"palette"`
	Transform string                 `yaml:"transform"`
	Settings  map[string]interface{} `yaml:"settings"`

	// Labels maps values to label text. A null label suppresses
	// the value's label.
	Labels map[string]*string `yaml:"labels"`
}

type facetDoc struct {
	Wrap     []string               `yaml:"wrap"`
	Rows     []string               `yaml:"rows"`
	Cols     []string               `yaml:"cols"`
	Settings map[string]interface{} `yaml:"settings"`
	Labels   map[string]*string     `yaml:"labels"`
}

type projectDoc struct {
	Coord    string                 `yaml:"coord"`
	Settings map[string]interface{} `yaml:"settings"`
}

type guideDoc struct {
	Type     string                 `yaml:"type"`
	Settings map[string]interface{} `yaml:"settings"`
}

// decodeSpec parses a YAML plot.
func decodeSpec(data []byte) (*plot.Spec, error) {
	var doc specDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.spec()
}

func (d *specDoc) spec() (*plot.Spec, error) {
	s := &plot.Spec{Query: d.Query, Labels: make(map[string]string)}
	for k, v := range d.Labels {
		s.Labels[k] = v
	}
	if d.Title != "" {
		s.Labels["title"] = d.Title
	}

	for i, ld := range d.Layers {
		g, err := plot.ParseGeom(ld.Geom)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		l := &plot.Layer{
			Geom:        g,
			Mappings:    make(plot.Mappings),
			Params:      normalizeMap(ld.Params),
			PartitionBy: ld.PartitionBy,
			Query:       ld.Query,
			DataKey:     ld.Data,
		}
		for aes, col := range ld.Aes {
			l.Mappings[aes] = plot.Col(col)
		}
		for aes, v := range ld.Set {
			l.Mappings[aes] = plot.Lit(normalize(v))
		}
		s.Layers = append(s.Layers, l)
	}

	for _, sd := range d.Scales {
		if sd.Aes == "" {
			return nil, fmt.Errorf("scale without aes")
		}
		ss := &plot.ScaleSpec{
			Aesthetic:  sd.Aes,
			Transform:  sd.Transform,
			Properties: normalizeMap(sd.Settings),
			Labels:     labelMap(sd.Labels),
		}
		if sd.Type != "" {
			k, err := plot.ParseScaleKind(sd.Type)
			if err != nil {
				return nil, fmt.Errorf("scale %s: %w", sd.Aes, err)
			}
			ss.Kind = k
		}
		if sd.Input != nil {
			ss.Input = normalizeList(sd.Input)
		}
		if sd.Output != nil {
			ss.Output.Values = normalizeList(sd.Output)
		}
		ss.Output.Palette = sd.Palette
		s.Scales = append(s.Scales, ss)
	}

	if f := d.Facet; f != nil {
		s.Facet = &plot.Facet{
			Wrap:       f.Wrap,
			Rows:       f.Rows,
			Cols:       f.Cols,
			Properties: normalizeMap(f.Settings),
			Labels:     labelMap(f.Labels),
		}
	}
	if p := d.Project; p != nil {
		c, err := plot.ParseCoord(p.Coord)
		if err != nil {
			return nil, err
		}
		s.Projection = &plot.Projection{Coord: c, Properties: normalizeMap(p.Settings)}
	}
	if len(d.Guides) > 0 {
		s.Guides = make(map[string]*plot.Guide)
		for aes, gd := range d.Guides {
			k, err := plot.ParseGuideKind(gd.Type)
			if err != nil {
				return nil, fmt.Errorf("guide %s: %w", aes, err)
			}
			s.Guides[plot.Primary(aes)] = &plot.Guide{Kind: k, Properties: normalizeMap(gd.Settings)}
		}
	}
	return s, nil
}

func labelMap(m map[string]*string) map[string]plot.Label {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]plot.Label, len(m))
	for k, v := range m {
		if v == nil {
			out[k] = plot.Label{Suppress: true}
		} else {
			out[k] = plot.Label{Text: *v}
		}
	}
	return out
}

// normalize converts YAML integers to float64 so numbers have one
// representation downstream.
func normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case []interface{}:
		return normalizeList(v)
	case map[string]interface{}:
		return normalizeMap(v)
	}
	return v
}

func normalizeList(xs []interface{}) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = normalize(x)
	}
	return out
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

// parseLayer parses a -layer flag.
func parseLayer(arg string) (*plot.Layer, error) {
	words, err := shellquote.Split(arg)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("missing geom")
	}
	g, err := plot.ParseGeom(words[0])
	if err != nil {
		return nil, err
	}
	l := &plot.Layer{Geom: g, Mappings: make(plot.Mappings)}
	for _, w := range words[1:] {
		if name, val, ok := strings.Cut(w, ":="); ok && !strings.Contains(name, "=") {
			l.Mappings[name] = plot.Lit(parseLiteral(val))
			continue
		}
		name, val, ok := strings.Cut(w, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("want name=value, got %q", w)
		}
		switch {
		case name == "query":
			l.Query = val
		case name == "data":
			l.DataKey = val
		case name == "partition_by":
			for _, col := range strings.Split(val, ",") {
				if col = strings.TrimSpace(col); col != "" {
					l.PartitionBy = append(l.PartitionBy, col)
				}
			}
		case g.Supports(name) || plot.IsPositional(name):
			l.Mappings[name] = plot.Col(val)
		default:
			if l.Params == nil {
				l.Params = make(map[string]interface{})
			}
			l.Params[name] = parseLiteral(val)
		}
	}
	return l, nil
}

// parseLiteral interprets a flag value as a boolean, a number or a
// string.
func parseLiteral(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// describe formats l in -layer syntax.
func describe(l *plot.Layer) string {
	var parts []string
	parts = append(parts, l.Geom.String())
	for _, aes := range l.Mappings.Names() {
		m := l.Mappings[aes]
		if m.IsLiteral {
			parts = append(parts, fmt.Sprintf("%s:=%v", aes, m.Literal))
		} else {
			parts = append(parts, aes+"="+m.Column)
		}
	}
	var params []string
	for k := range l.Params {
		params = append(params, k)
	}
	sort.Strings(params)
	for _, k := range params {
		parts = append(parts, fmt.Sprintf("%s=%v", k, l.Params[k]))
	}
	return shellquote.Join(parts...)
}
