// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"github.com/aclements/ggvl/plot"
)

var facetProps = []string{"free", "ncol"}

// facet wraps body in a facet spec on doc.
func (c *compiler) facet(doc, body obj) error {
	f := c.p.Facet
	for _, k := range sortedKeys(f.Properties) {
		if !contains(facetProps, k) {
			return plot.Validationf("facet does not support property '%s'. Allowed: free, ncol", k).ForProperty(k, facetProps)
		}
	}

	if f.IsWrap() {
		if len(f.Wrap) > 1 {
			c.r.warnf("wrapped facets use only the first variable '%s'", f.Wrap[0])
		}
		doc["facet"] = c.facetField(f.Wrap[0])
		if n, ok := toFloat(f.Properties["ncol"]); ok {
			doc["columns"] = int(n)
		}
	} else {
		fs := obj{}
		if len(f.Rows) > 0 {
			if len(f.Rows) > 1 {
				c.r.warnf("grid facets use only the first row variable '%s'", f.Rows[0])
			}
			fs["row"] = c.facetField(f.Rows[0])
		}
		if len(f.Cols) > 0 {
			if len(f.Cols) > 1 {
				c.r.warnf("grid facets use only the first column variable '%s'", f.Cols[0])
			}
			fs["column"] = c.facetField(f.Cols[0])
		}
		doc["facet"] = fs
	}

	var free []string
	switch v, _ := f.Properties["free"].(string); v {
	case "x", "free_x":
		free = []string{"x"}
	case "y", "free_y":
		free = []string{"y"}
	case "both", "free", "xy":
		free = []string{"x", "y"}
	}
	if len(free) > 0 {
		sc := obj{}
		for _, ch := range free {
			sc[ch] = "independent"
		}
		doc["resolve"] = obj{"scale": sc}
	}
	doc["spec"] = body
	return nil
}

func (c *compiler) facetField(col string) obj {
	ff := obj{"field": fieldName(col), "type": "nominal"}
	if t, ok := c.p.Label(col); ok {
		ff["title"] = t
	} else {
		ff["title"] = nil
	}
	if len(c.p.Facet.Labels) > 0 {
		var cases []labelCase
		for _, k := range sortedKeys(c.p.Facet.Labels) {
			l := c.p.Facet.Labels[k]
			text := l.Text
			if l.Suppress {
				text = ""
			}
			cases = append(cases, labelCase{from: k, to: text})
		}
		ff["header"] = obj{"labelExpr": conditional("datum.label", cases)}
	}
	return ff
}
