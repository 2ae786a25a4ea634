// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"sort"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/plot"
)

// unscaled aesthetics pass their values straight through to the
// renderer.
var unscaled = map[string]bool{
	"label":    true,
	"family":   true,
	"fontface": true,
	"angle":    true,
	"weight":   true,
}

// HasScale reports whether aes is resolved into a scale.
func HasScale(aes string) bool {
	return !unscaled[aes]
}

// ResolvePlot resolves spec against tables, which maps each layer's
// data key to its materialized rows. It resolves one scale per
// mapped aesthetic family and checks that every referenced column
// exists.
func ResolvePlot(spec *plot.Spec, tables map[string]*table.Table) (*plot.Plot, error) {
	if len(spec.Layers) == 0 {
		return nil, plot.Validationf("plot has no layers")
	}

	p := &plot.Plot{
		Scales: make(map[string]*plot.Scale),
		Facet:  spec.Facet,
		Guides: spec.Guides,
		Labels: spec.Labels,
	}
	if spec.Projection != nil {
		if err := spec.Projection.Validate(); err != nil {
			return nil, err
		}
		p.Projection = spec.Projection
	}

	// Gather the columns feeding each aesthetic family.
	cols := make(map[string][]interface{})
	for i, l := range spec.Layers {
		if err := l.Validate(i); err != nil {
			return nil, err
		}
		tab, ok := tables[l.Key(i)]
		if !ok || tab == nil {
			return nil, plot.Validationf("Missing data source '%s' for layer %d", l.Key(i), i).ForLayer(i)
		}
		avail := tab.Columns()
		for _, aes := range l.Mappings.Names() {
			m := l.Mappings[aes]
			if m.IsLiteral || l.IsConsumed(aes) {
				continue
			}
			if !contains(avail, m.Column) {
				return nil, missingColumn(m.DisplayName(), aes, i, avail)
			}
			if !HasScale(aes) {
				continue
			}
			fam := plot.Primary(aes)
			cols[fam] = append(cols[fam], tab.Column(m.Column))
		}
		for _, col := range l.PartitionBy {
			if !contains(avail, col) {
				return nil, missingColumn(col, "partition_by", i, avail)
			}
		}
		p.Layers = append(p.Layers, l.Clone())
	}

	if spec.Facet != nil {
		for _, v := range spec.Facet.Vars() {
			found := false
			var avail []string
			for i, l := range spec.Layers {
				tab := tables[l.Key(i)]
				avail = tab.Columns()
				if contains(avail, v) {
					found = true
					break
				}
			}
			if !found {
				return nil, plot.Validationf("Facet variable '%s' does not exist in the query result.\nAvailable columns: %s", v, join(avail)).
					ForProperty("facet", nil).WithAvailable(avail)
			}
		}
	}

	// Scales the user declared without any mapped column still
	// resolve from their explicit input range.
	fams := make([]string, 0, len(cols))
	for fam := range cols {
		fams = append(fams, fam)
	}
	for _, ss := range spec.Scales {
		fam := plot.Primary(ss.Aesthetic)
		if _, ok := cols[fam]; !ok && ss.Input != nil {
			fams = append(fams, fam)
			cols[fam] = []interface{}{ss.Input}
		}
	}
	sort.Strings(fams)

	for _, fam := range fams {
		ss := spec.ScaleFor(fam)
		if ss == nil {
			ss = &plot.ScaleSpec{Aesthetic: fam}
		} else {
			c := *ss
			c.Aesthetic = fam
			ss = &c
		}
		s, err := Resolve(ss, cols[fam])
		if err != nil {
			return nil, err
		}
		p.Scales[fam] = s
	}
	return p, nil
}

func missingColumn(col, aes string, layer int, avail []string) error {
	return plot.Validationf("Column '%s' referenced in aesthetic '%s' (layer %d) does not exist in the query result.\nAvailable columns: %s", col, aes, layer, join(avail)).
		ForAesthetic(aes).ForLayer(layer).WithAvailable(avail)
}
