// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stat rewrites the source query of statistical geoms into
// SQL that computes their summaries.
//
// A statistical transform never executes SQL. It returns the derived
// query along with how the layer's aesthetics map onto the columns
// the query produces. Produced columns are named with
// naming.StatColumn so they never collide with user columns.
package stat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// Result is the outcome of a non-identity statistical transform.
type Result struct {
	// Query is the derived query.
	Query string

	// StatColumns are the statistic names of the produced
	// columns. The actual column of statistic s is
	// naming.StatColumn(s).
	StatColumns []string

	// DummyColumns lists produced statistics that are
	// placeholders and get no axis.
	DummyColumns []string

	// Consumed lists aesthetics the transform used up.
	Consumed []string

	// Mappings maps aesthetics to the statistic that now supplies
	// them.
	Mappings map[string]string
}

// Apply computes the statistical transform of geom over query. schema
// describes query's columns, aes is the layer's mappings, groupBy
// lists extra grouping columns, and params holds the layer
// parameters, which take precedence over geom defaults.
//
// Apply returns a nil Result if geom has no statistical transform.
func Apply(geom plot.Geom, query string, schema plot.Schema, aes plot.Mappings, groupBy []string, params map[string]interface{}, d *Dialect) (*Result, error) {
	if d == nil {
		d = dialects["generic"]
	}
	param := func(name string) interface{} {
		if v, ok := params[name]; ok {
			return v
		}
		v, _ := geom.Default(name)
		return v
	}
	switch geom {
	case plot.Boxplot:
		return boxplot(query, schema, aes, groupBy, param, d)
	case plot.Density:
		return density(query, schema, aes, groupBy, param, d, false)
	case plot.Violin:
		return density(query, schema, aes, groupBy, param, d, true)
	}
	return nil, nil
}

// Remap returns a copy of l rewired onto the output of r. Mapped
// aesthetics move to the statistic columns, keeping their pre-rename
// display names, and consumed aesthetics are dropped.
func Remap(l *plot.Layer, r *Result) *plot.Layer {
	out := l.Clone()
	if r == nil {
		return out
	}
	out.DerivedQuery = r.Query
	dummy := make(map[string]bool)
	for _, s := range r.DummyColumns {
		dummy[s] = true
	}
	for aes, s := range r.Mappings {
		orig := s
		if m, ok := l.Mappings[aes]; ok && !m.IsLiteral {
			orig = m.DisplayName()
		}
		out.Mappings[aes] = plot.Mapping{
			Column:   naming.StatColumn(s),
			Original: orig,
			Dummy:    dummy[s],
		}
	}
	for _, aes := range r.Consumed {
		delete(out.Mappings, aes)
		if !out.IsConsumed(aes) {
			out.Consumed = append(out.Consumed, aes)
		}
	}
	sort.Strings(out.Consumed)
	return out
}

// GroupColumns returns the columns a statistical transform of l should
// group by besides its own axis: partition columns and the columns of
// discrete non-positional mappings.
func GroupColumns(l *plot.Layer, schema plot.Schema) []string {
	var out []string
	add := func(col string) {
		for _, c := range out {
			if c == col {
				return
			}
		}
		out = append(out, col)
	}
	for _, col := range l.PartitionBy {
		add(col)
	}
	for _, aes := range l.Mappings.Names() {
		if plot.IsPositional(aes) {
			continue
		}
		col, ok := l.Mappings.Column(aes)
		if !ok {
			continue
		}
		if info, ok := schema.Lookup(col); ok && info.Discrete {
			add(col)
		}
	}
	return out
}

// columnInfo returns the schema entry for the column mapped to aes.
func columnInfo(schema plot.Schema, aes plot.Mappings, name string) (string, plot.ColumnInfo, error) {
	col, ok := aes.Column(name)
	if !ok {
		return "", plot.ColumnInfo{}, plot.Validationf("statistical transform requires the '%s' aesthetic to be mapped to a column", name).ForAesthetic(name)
	}
	info, ok := schema.Lookup(col)
	if !ok {
		return "", plot.ColumnInfo{}, plot.Internalf("Missing column info for '%s' (%s)", col, name)
	}
	return col, info, nil
}

// quoteAll quotes each column, optionally qualified by alias.
func quoteAll(d *Dialect, alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = d.Quote(c)
		if alias != "" {
			out[i] = alias + "." + out[i]
		}
	}
	return out
}

// joinOn returns a join condition matching cols between aliases a and
// b, treating NULLs as equal.
func joinOn(d *Dialect, a, b string, cols []string) string {
	if len(cols) == 0 {
		return "1 = 1"
	}
	var conds []string
	for _, c := range cols {
		q := d.Quote(c)
		conds = append(conds, fmt.Sprintf("(%[1]s.%[3]s = %[2]s.%[3]s OR (%[1]s.%[3]s IS NULL AND %[2]s.%[3]s IS NULL))", a, b, q))
	}
	return strings.Join(conds, " AND ")
}

// prefix returns cols joined with ", " and followed by ", ", or "" if
// cols is empty.
func prefix(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	return strings.Join(cols, ", ") + ", "
}

func toFloat(v interface{}) (float64, bool) {
	switch v.(type) {
	case bool, string, nil:
		return 0, false
	}
	return plot.ToFloat(v)
}
