// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// boxplot draws a boxplot from its long-format summary rows. The
// summary rows pivot into one row per group, which draws the
// whiskers, box and median. Outlier rows draw as points.
func (c *compiler) boxplot(i int, l *plot.Layer, t *table.Table) ([]obj, error) {
	valueCol := naming.StatColumn("value")
	typeCol := naming.StatColumn("type")
	valueCh := ""
	for _, ch := range []string{"y", "x"} {
		if col, ok := l.Mappings.Column(ch); ok && col == valueCol {
			valueCh = ch
		}
	}
	if valueCh == "" {
		return nil, plot.Internalf("boxplot layer %d has no summary column", i)
	}
	groupCh := "x"
	if valueCh == "x" {
		groupCh = "y"
	}

	enc := c.encoding(l, t, "bar")
	vf, _ := enc[valueCh].(obj)
	with := func(field string) obj {
		f := copyObj(vf)
		f["field"] = field
		return f
	}
	base := func() obj {
		e := obj{}
		if g, ok := enc[groupCh]; ok {
			e[groupCh] = g
		}
		return e
	}

	src := sourceFilter(l.Key(i))
	comp := "datum[" + jsString(naming.Component) + "]"
	var groupby []interface{}
	for _, col := range t.Columns() {
		if col != typeCol && col != valueCol {
			groupby = append(groupby, fieldName(col))
		}
	}
	groupby = append(groupby, naming.Source)
	summary := []interface{}{
		obj{"filter": src + " && " + comp + " !== 'outlier'"},
		obj{"pivot": naming.Component, "value": valueCol, "groupby": groupby},
	}

	whisker := base()
	whisker[valueCh] = with("lower")
	whisker[valueCh+"2"] = obj{"field": "upper"}

	box := copyObj(enc)
	box[valueCh] = with("q1")
	box[valueCh+"2"] = obj{"field": "q3"}
	boxMark := obj{"type": "bar", "clip": true}
	if w, ok := toFloat(l.Param("width")); ok {
		boxMark["width"] = obj{"band": w}
	}

	median := base()
	median[valueCh] = with("median")

	layers := []obj{
		{"mark": obj{"type": "rule", "clip": true}, "encoding": whisker, "transform": summary},
		{"mark": boxMark, "encoding": box, "transform": summary},
		{"mark": obj{"type": "tick", "clip": true, "color": "black"}, "encoding": median, "transform": summary},
	}
	if show, _ := l.Param("outliers").(bool); show {
		layers = append(layers, obj{
			"mark":      obj{"type": "point", "clip": true, "filled": true},
			"encoding":  copyObj(enc),
			"transform": []interface{}{obj{"filter": src + " && " + comp + " === 'outlier'"}},
		})
	}
	for _, s := range layers {
		c.project(s)
	}
	return layers, nil
}

func copyObj(o obj) obj {
	out := make(obj, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}
