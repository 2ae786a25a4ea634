// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vegalite renders resolved plots as Vega-Lite v6 JSON
// documents.
//
// Every layer's rows are merged into one inline dataset tagged with
// the layer's data key, and each layer filters its own rows back out.
// Output is deterministic: object keys are sorted on serialization
// and every map is walked in sorted order.
package vegalite

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/palette"
	"github.com/aclements/ggvl/plot"
)

// Schema is the Vega-Lite schema URL of rendered documents.
const Schema = "https://vega.github.io/schema/vega-lite/v6.json"

// A Renderer converts plots to Vega-Lite.
type Renderer struct {
	// Logger receives warnings about features the renderer cannot
	// express. If nil, the standard logger is used.
	Logger *log.Logger
}

// Render renders p over data with the default Renderer.
func Render(p *plot.Plot, data map[string]*table.Table) ([]byte, error) {
	return new(Renderer).Render(p, data)
}

// Render returns the indented Vega-Lite JSON of p. data maps layer
// data keys to query results.
func (r *Renderer) Render(p *plot.Plot, data map[string]*table.Table) ([]byte, error) {
	doc, err := r.Document(p, data)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, plot.Renderf("cannot serialize chart: %v", err)
	}
	return b, nil
}

func (r *Renderer) warnf(format string, a ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, a...)
		return
	}
	log.Printf(format, a...)
}

// compiler holds the state of rendering one plot.
type compiler struct {
	r *Renderer
	p *plot.Plot

	// titled records the aesthetic families that already have an
	// axis or legend title.
	titled map[string]bool

	// gradient is set if binned color legends draw as gradients.
	gradient bool
}

// Document returns the Vega-Lite document of p as a JSON object.
func (r *Renderer) Document(p *plot.Plot, data map[string]*table.Table) (map[string]interface{}, error) {
	if len(p.Layers) == 0 {
		return nil, plot.Validationf("plot has no layers")
	}
	c := &compiler{r: r, p: p, titled: map[string]bool{}}
	c.gradient = c.gradientLegends()

	values := []interface{}{}
	seen := map[string]bool{}
	var specs []obj
	for i, l := range p.Layers {
		key := l.Key(i)
		t, ok := data[key]
		if !ok || t == nil {
			return nil, plot.Validationf("Missing data source '%s' for layer %d", key, i).ForLayer(i)
		}
		if !seen[key] {
			seen[key] = true
			comp := ""
			if l.Geom.Info().Composite {
				comp = naming.StatColumn("type")
			}
			values = append(values, rowsOf(t, key, comp)...)
		}
		ls, err := c.layer(i, l, t, len(p.Layers) > 1)
		if err != nil {
			return nil, err
		}
		specs = append(specs, ls...)
	}

	doc := obj{
		"$schema": Schema,
		"data":    obj{"values": values},
	}
	if title, ok := p.Labels["title"]; ok {
		doc["title"] = title
	}
	var body obj
	if len(specs) == 1 {
		body = specs[0]
	} else {
		body = obj{"layer": specs}
	}
	if p.Facet != nil && len(p.Facet.Vars()) > 0 {
		if err := c.facet(doc, body); err != nil {
			return nil, err
		}
	} else {
		for k, v := range body {
			doc[k] = v
		}
		doc["width"] = "container"
		doc["height"] = "container"
	}
	if p.Projection != nil && p.Projection.Coord == plot.Cartesian {
		if ratio, ok := p.Projection.Properties["ratio"]; ok {
			doc["usermeta"] = obj{"aspectRatio": ratio}
		}
	}
	return doc, nil
}

// gradientLegends reports whether the plot has exactly one binned
// non-positional scale and it is a color scale. Several binned
// legends draw as symbols so they look alike.
func (c *compiler) gradientLegends() bool {
	var binned []string
	for _, fam := range sortedKeys(c.p.Scales) {
		s := c.p.Scales[fam]
		if s.Kind == plot.ScaleBinned && !plot.IsPositional(fam) && c.used(fam) {
			binned = append(binned, fam)
		}
	}
	return len(binned) == 1 && palette.IsColorAesthetic(binned[0])
}

// used reports whether any layer maps a column to family fam.
func (c *compiler) used(fam string) bool {
	for _, l := range c.p.Layers {
		for aes, m := range l.Mappings {
			if !m.IsLiteral && plot.Primary(aes) == fam && !l.IsConsumed(aes) {
				return true
			}
		}
	}
	return false
}

// layer returns the Vega-Lite layer specs of layer i.
func (c *compiler) layer(i int, l *plot.Layer, t *table.Table, filter bool) ([]obj, error) {
	avail := t.Columns()
	for _, aes := range l.Mappings.Names() {
		m := l.Mappings[aes]
		if m.IsLiteral || l.IsConsumed(aes) {
			continue
		}
		if !contains(avail, m.Column) {
			return nil, plot.Validationf("Column '%s' referenced in aesthetic '%s' (layer %d) does not exist in the query result.\nAvailable columns: %s",
				m.Column, aes, i, strings.Join(avail, ", ")).ForAesthetic(aes).ForLayer(i).WithAvailable(avail)
		}
	}
	if l.Geom == plot.Boxplot {
		return c.boxplot(i, l, t)
	}

	mark := MarkType(l.Geom)
	spec := obj{
		"mark":     markDef(l, mark),
		"encoding": c.encoding(l, t, mark),
	}
	var transforms []interface{}
	if filter {
		transforms = append(transforms, obj{"filter": sourceFilter(l.Key(i))})
	}
	transforms = append(transforms, layerTransforms(l, c.groupFields(l))...)
	if len(transforms) > 0 {
		spec["transform"] = transforms
	}
	c.project(spec)
	return []obj{spec}, nil
}

// groupFields returns the columns splitting layer l into series.
func (c *compiler) groupFields(l *plot.Layer) []string {
	var out []string
	for _, aes := range l.Mappings.Names() {
		if plot.IsPositional(aes) || l.IsConsumed(aes) {
			continue
		}
		col, ok := l.Mappings.Column(aes)
		if !ok {
			continue
		}
		if s := c.p.Scale(aes); s != nil && s.Kind == plot.ScaleDiscrete && !contains(out, col) {
			out = append(out, col)
		}
	}
	for _, col := range l.PartitionBy {
		if !contains(out, col) {
			out = append(out, col)
		}
	}
	return out
}

// sourceFilter returns the filter expression selecting rows of
// dataset key.
func sourceFilter(key string) string {
	return "datum[" + jsString(naming.Source) + "] === " + jsString(key)
}

// fieldName escapes characters Vega-Lite treats as field paths.
func fieldName(col string) string {
	r := strings.NewReplacer(`\`, `\\`, ".", `\.`, "[", `\[`, "]", `\]`)
	return r.Replace(col)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
