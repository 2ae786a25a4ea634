// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/plot"
)

// encoding returns the encoding block of layer l drawn as mark.
func (c *compiler) encoding(l *plot.Layer, t *table.Table, mark string) obj {
	enc := obj{}
	for _, aes := range l.Mappings.Names() {
		if l.IsConsumed(aes) {
			continue
		}
		m := l.Mappings[aes]
		ch := channelOf(l, aes)
		if ch == "" {
			if !m.IsLiteral && aes != "width" && aes != "weight" {
				c.r.warnf("%s layer: aesthetic '%s' has no Vega-Lite channel", l.Geom, aes)
			}
			continue
		}
		if _, dup := enc[ch]; dup {
			c.r.warnf("%s layer: aesthetic '%s' duplicates channel '%s'", l.Geom, aes, ch)
			continue
		}
		if m.IsLiteral {
			enc[ch] = obj{"value": convertValue(aes, m.Literal, mark)}
			continue
		}
		enc[ch] = c.field(l, aes, ch, m, t.Column(m.Column))
	}

	// Parameters naming aesthetics act as constants.
	for _, name := range sortedKeys(l.Params) {
		if _, mapped := l.Mappings[name]; mapped || !l.Geom.Supports(name) {
			continue
		}
		ch := channelOf(l, name)
		if _, dup := enc[ch]; ch == "" || dup {
			continue
		}
		enc[ch] = obj{"value": convertValue(name, l.Params[name], mark)}
	}

	if len(l.PartitionBy) > 0 {
		var detail []interface{}
		for _, col := range l.PartitionBy {
			detail = append(detail, obj{"field": fieldName(col), "type": "nominal"})
		}
		enc["detail"] = detail
	}

	switch l.Geom {
	case plot.Histogram:
		if x, ok := enc["x"].(obj); ok {
			if s := c.p.Scale("x"); s == nil || s.Kind != plot.ScaleBinned {
				x["bin"] = true
			}
		}
		if _, ok := enc["y"]; !ok {
			enc["y"] = obj{"aggregate": "count", "type": "quantitative", "title": "count"}
		}
	case plot.Violin:
		c.violin(l, enc)
	case plot.HLine:
		delete(enc, "x")
	case plot.VLine:
		delete(enc, "y")
	}
	return enc
}

// violin draws the density width along x, centered on each
// category. The category moves to color so violins stay distinct.
func (c *compiler) violin(l *plot.Layer, enc obj) {
	col, ok := l.Mappings.Column("width")
	if !ok {
		return
	}
	if cat, ok := enc["x"].(obj); ok {
		moved := obj{"field": cat["field"], "type": cat["type"]}
		if _, ok := enc["color"]; !ok {
			enc["color"] = moved
		} else {
			enc["detail"] = append(asList(enc["detail"]), moved)
		}
	}
	enc["x"] = obj{
		"field": fieldName(col),
		"type":  "quantitative",
		"stack": "center",
		"axis":  nil,
		"title": nil,
	}
}

func asList(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

// field returns the field definition of aesthetic aes mapped to
// column m.Column on channel ch.
func (c *compiler) field(l *plot.Layer, aes, ch string, m plot.Mapping, col interface{}) obj {
	s := c.p.Scale(aes)
	f := obj{
		"field": fieldName(m.Column),
		"type":  fieldType(s, col),
	}
	if plot.TypeOf(col) == plot.TypeTime {
		f["timeUnit"] = "utchoursminutesseconds"
	}

	fam := plot.Primary(aes)
	if c.titled[fam] {
		f["title"] = nil
	} else {
		c.titled[fam] = true
		f["title"] = c.title(aes, m)
	}

	secondary := ch == "x2" || ch == "y2"
	if s != nil && !secondary {
		if sc, ok := c.scaleDef(s, aes, MarkType(l.Geom)); ok {
			f["scale"] = sc
		}
		if key, g := c.guideDef(s, aes); key != "" {
			f[key] = g
		}
	}
	if m.Dummy && plot.IsPositional(aes) {
		f["axis"] = nil
	}
	if ch == "text" {
		if format, ok := l.Param("format").(string); ok && format != "" {
			f["format"] = format
		}
	}
	return f
}

// title returns the axis or legend title of aes.
func (c *compiler) title(aes string, m plot.Mapping) interface{} {
	if t, ok := c.p.Label(aes); ok {
		return t
	}
	if t, ok := c.p.Label(plot.Primary(aes)); ok {
		return t
	}
	return m.DisplayName()
}
