// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"io"
	"log"
	"sort"
	"strings"
	"testing"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
	"github.com/aclements/ggvl/reader"
)

const data = `grp,v,w
A,1,10
A,2,20
A,3,30
A,4,40
A,5,50
A,100,60
B,2,15
B,3,25
B,4,35
`

func load(t *testing.T) *reader.DB {
	t.Helper()
	db, err := reader.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.LoadCSV(context.Background(), "t", strings.NewReader(data)))
	return db
}

func TestRunPoints(t *testing.T) {
	db := load(t)
	spec := &plot.Spec{
		Query: "SELECT * FROM t",
		Layers: []*plot.Layer{{
			Geom:     plot.Point,
			Mappings: plot.Mappings{"x": plot.Col("v"), "y": plot.Col("w"), "color": plot.Col("grp")},
		}},
	}
	p, tables, err := Run(context.Background(), spec, db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, 9, tables[naming.LayerKey(0)].Len())
	require.Contains(t, p.Scales, "x")
	assert.Equal(t, plot.ScaleContinuous, p.Scales["x"].Kind)
	assert.Equal(t, plot.ScaleDiscrete, p.Scales["color"].Kind)
	assert.Equal(t, []interface{}{"A", "B"}, p.Scales["color"].Domain)
}

func TestRunBoxplot(t *testing.T) {
	db := load(t)
	spec := &plot.Spec{
		Layers: []*plot.Layer{{
			Geom:     plot.Boxplot,
			Query:    "SELECT grp, v FROM t",
			Mappings: plot.Mappings{"x": plot.Col("grp"), "y": plot.Col("v")},
		}},
	}
	p, tables, err := Run(context.Background(), spec, db, "sqlite")
	require.NoError(t, err)
	tab := tables[naming.LayerKey(0)]
	assert.Equal(t, 11, tab.Len())
	types := plot.Values(tab.Column(naming.StatColumn("type")))
	outliers := 0
	for _, ty := range types {
		if ty == "outlier" {
			outliers++
		}
	}
	assert.Equal(t, 1, outliers)

	y := p.Layers[0].Mappings["y"]
	assert.Equal(t, naming.StatColumn("value"), y.Column)
	assert.Equal(t, "v", y.DisplayName())
	assert.NotEmpty(t, p.Layers[0].DerivedQuery)

	b, err := Render(context.Background(), spec, db, "sqlite", log.New(io.Discard, "", 0))
	require.NoError(t, err)
	doc, err := oj.ParseString(string(b))
	require.NoError(t, err)
	layers := jp.MustParseString("$.layer").Get(doc)
	require.Len(t, layers, 1)
	assert.Len(t, layers[0], 4)
}

func TestRunBinned(t *testing.T) {
	db := load(t)
	spec := &plot.Spec{
		Query: "SELECT * FROM t",
		Layers: []*plot.Layer{{
			Geom:     plot.Point,
			Mappings: plot.Mappings{"x": plot.Col("v"), "y": plot.Col("w")},
		}},
		Scales: []*plot.ScaleSpec{{
			Aesthetic:  "x",
			Kind:       plot.ScaleBinned,
			Properties: map[string]interface{}{"breaks": []interface{}{0.0, 50.0, 100.0}},
		}},
	}
	p, tables, err := Run(context.Background(), spec, db, "sqlite")
	require.NoError(t, err)
	seen := map[float64]bool{}
	for _, v := range plot.Values(tables[naming.LayerKey(0)].Column("v")) {
		f, ok := plot.ToFloat(v)
		require.True(t, ok, "%#v", v)
		seen[f] = true
	}
	var centers []float64
	for f := range seen {
		centers = append(centers, f)
	}
	sort.Float64s(centers)
	assert.Equal(t, []float64{25, 75}, centers)
	assert.Equal(t, []float64{0, 50, 100}, p.Scales["x"].Breaks)
}

func TestRunDensity(t *testing.T) {
	db := load(t)
	spec := &plot.Spec{
		Query: "SELECT * FROM t",
		Layers: []*plot.Layer{{
			Geom:     plot.Density,
			Mappings: plot.Mappings{"x": plot.Col("w"), "color": plot.Col("grp")},
		}},
	}
	p, tables, err := Run(context.Background(), spec, db, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, 2*512, tables[naming.LayerKey(0)].Len())
	assert.Equal(t, naming.StatColumn("density"), p.Layers[0].Mappings["y"].Column)
	assert.Equal(t, "w", p.Layers[0].Mappings["x"].DisplayName())
}

func TestRunErrors(t *testing.T) {
	db := load(t)
	ctx := context.Background()
	layer := &plot.Layer{Geom: plot.Point, Mappings: plot.Mappings{"x": plot.Col("v"), "y": plot.Col("w")}}

	_, _, err := Run(ctx, &plot.Spec{Layers: []*plot.Layer{layer}}, db, "sqlite")
	assert.True(t, plot.IsValidation(err), "%v", err)

	_, _, err = Run(ctx, &plot.Spec{Query: "SELECT * FROM t", Layers: []*plot.Layer{layer}}, db, "oracle")
	assert.True(t, plot.IsValidation(err), "%v", err)

	_, _, err = Run(ctx, &plot.Spec{Query: "SELECT * FROM missing", Layers: []*plot.Layer{layer}}, db, "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing query")

	bad := &plot.Layer{Geom: plot.Point, Mappings: plot.Mappings{"x": plot.Col("v"), "y": plot.Col("nope")}}
	_, _, err = Run(ctx, &plot.Spec{Query: "SELECT * FROM t", Layers: []*plot.Layer{bad}}, db, "sqlite")
	assert.True(t, plot.IsValidation(err), "%v", err)
	assert.Contains(t, err.Error(), "Available columns")
}
