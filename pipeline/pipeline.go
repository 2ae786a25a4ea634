// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline runs a plot specification end to end: it executes
// each layer's query, bins positional columns with binned scales in
// SQL, applies statistical transforms, resolves scales and renders
// Vega-Lite.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/plot"
	"github.com/aclements/ggvl/scale"
	"github.com/aclements/ggvl/stat"
	"github.com/aclements/ggvl/vegalite"
)

// An Executor runs SQL queries. *reader.DB is an Executor.
type Executor interface {
	Execute(ctx context.Context, query string) (*table.Table, error)
}

// Run executes spec's queries against ex using SQL dialect dialect
// and resolves the plot. It returns the resolved plot and the query
// results keyed by layer data key.
func Run(ctx context.Context, spec *plot.Spec, ex Executor, dialect string) (*plot.Plot, map[string]*table.Table, error) {
	d, err := stat.GetDialect(dialect)
	if err != nil {
		return nil, nil, err
	}
	if len(spec.Layers) == 0 {
		return nil, nil, plot.Validationf("plot has no layers")
	}

	r := &runner{ctx: ctx, ex: ex, cache: make(map[string]*table.Table)}
	queries := make([]string, len(spec.Layers))
	raw := make([]*table.Table, len(spec.Layers))
	for i, l := range spec.Layers {
		if err := l.Validate(i); err != nil {
			return nil, nil, err
		}
		q := l.Query
		if q == "" {
			q = spec.Query
		}
		if q == "" {
			return nil, nil, plot.Validationf("layer %d has no query and the plot has no global query", i).ForLayer(i)
		}
		queries[i] = q
		if raw[i], err = r.execute(q); err != nil {
			return nil, nil, err
		}
	}

	// Binned positional scales are resolved on the raw columns
	// first so every layer bins against the same breaks.
	binned := make(map[string]*plot.Scale)
	for _, ss := range spec.Scales {
		fam := plot.Primary(ss.Aesthetic)
		if ss.Kind != plot.ScaleBinned || !plot.IsPositional(fam) {
			continue
		}
		var cols []interface{}
		for i, l := range spec.Layers {
			for _, aes := range plot.Family(fam) {
				if col, ok := l.Mappings.Column(aes); ok && contains(raw[i].Columns(), col) {
					cols = append(cols, raw[i].Column(col))
				}
			}
		}
		c := *ss
		c.Aesthetic = fam
		s, err := scale.Resolve(&c, cols)
		if err != nil {
			return nil, nil, err
		}
		binned[fam] = s
	}

	resolved := *spec
	resolved.Layers = make([]*plot.Layer, len(spec.Layers))
	tables := make(map[string]*table.Table)
	for i, l := range spec.Layers {
		q, t := queries[i], raw[i]
		if bq := binQuery(q, t, l, binned, d); bq != q {
			q = bq
			if t, err = r.execute(q); err != nil {
				return nil, nil, err
			}
		}
		nl := l.Clone()
		if l.Geom.Info().Stat {
			schema := plot.SchemaOf(t)
			res, err := stat.Apply(l.Geom, q, schema, l.Mappings, stat.GroupColumns(l, schema), l.Params, d)
			if err != nil {
				return nil, nil, err
			}
			if res != nil {
				nl = stat.Remap(l, res)
				if t, err = r.execute(res.Query); err != nil {
					return nil, nil, err
				}
			}
		}
		key := nl.Key(i)
		if _, ok := tables[key]; !ok {
			tables[key] = t
		}
		resolved.Layers[i] = nl
	}

	// Bin centers alone would narrow the scales; pin their breaks.
	resolved.Scales = make([]*plot.ScaleSpec, len(spec.Scales))
	for i, ss := range spec.Scales {
		s, ok := binned[plot.Primary(ss.Aesthetic)]
		if !ok || ss.Kind != plot.ScaleBinned {
			resolved.Scales[i] = ss
			continue
		}
		c := *ss
		c.Properties = make(map[string]interface{}, len(ss.Properties)+1)
		for k, v := range ss.Properties {
			c.Properties[k] = v
		}
		breaks := make([]interface{}, len(s.Breaks))
		for j, b := range s.Breaks {
			breaks[j] = b
		}
		c.Properties["breaks"] = breaks
		resolved.Scales[i] = &c
	}

	p, err := scale.ResolvePlot(&resolved, tables)
	if err != nil {
		return nil, nil, err
	}
	return p, tables, nil
}

// Render runs spec and renders it as Vega-Lite JSON. Renderer
// warnings go to logger, or the standard logger if logger is nil.
func Render(ctx context.Context, spec *plot.Spec, ex Executor, dialect string, logger *log.Logger) ([]byte, error) {
	p, tables, err := Run(ctx, spec, ex, dialect)
	if err != nil {
		return nil, err
	}
	return (&vegalite.Renderer{Logger: logger}).Render(p, tables)
}

type runner struct {
	ctx   context.Context
	ex    Executor
	cache map[string]*table.Table
}

// execute runs q, reusing the result of an identical earlier query.
func (r *runner) execute(q string) (*table.Table, error) {
	if t, ok := r.cache[q]; ok {
		return t, nil
	}
	t, err := r.ex.Execute(r.ctx, q)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	r.cache[q] = t
	return t, nil
}

// binQuery wraps q so that numeric columns mapped to binned
// positional scales hold their bin centers. It returns q if l maps no
// such column.
func binQuery(q string, t *table.Table, l *plot.Layer, binned map[string]*plot.Scale, d *stat.Dialect) string {
	targets := make(map[string]*plot.Scale)
	for _, aes := range l.Mappings.Names() {
		col, ok := l.Mappings.Column(aes)
		if !ok || !plot.IsPositional(aes) || !contains(t.Columns(), col) {
			continue
		}
		s, ok := binned[plot.Primary(aes)]
		if ok && plot.TypeOf(t.Column(col)).IsNumeric() {
			targets[col] = s
		}
	}
	if len(targets) == 0 {
		return q
	}
	sel := make([]string, 0, len(t.Columns()))
	for _, col := range t.Columns() {
		qc := d.Quote(col)
		if s, ok := targets[col]; ok {
			if expr := scale.BinSQL(qc, s.Breaks, s.Str("closed")); expr != "" {
				sel = append(sel, expr+" AS "+qc)
				continue
			}
		}
		sel = append(sel, qc)
	}
	return fmt.Sprintf("SELECT %s FROM (%s) AS __ggvl_binned__", strings.Join(sel, ", "), q)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
