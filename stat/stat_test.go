// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// openDB returns an in-memory database holding table t(grp, v) with
// the given rows.
func openDB(t *testing.T, rows map[string][]float64) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec("CREATE TABLE t (grp TEXT, v REAL)")
	require.NoError(t, err)
	for g, vs := range rows {
		for _, v := range vs {
			_, err := db.Exec("INSERT INTO t VALUES (?, ?)", g, v)
			require.NoError(t, err)
		}
	}
	return db
}

type statRow struct {
	group string
	typ   string
	value float64
}

func runBoxplot(t *testing.T, db *sql.DB, query string) []statRow {
	t.Helper()
	rows, err := db.Query(query)
	require.NoError(t, err, query)
	defer rows.Close()
	var out []statRow
	for rows.Next() {
		var r statRow
		require.NoError(t, rows.Scan(&r.group, &r.typ, &r.value))
		out = append(out, r)
	}
	require.NoError(t, rows.Err())
	return out
}

var boxSchema = plot.Schema{
	{Name: "grp", Type: plot.TypeString, Discrete: true},
	{Name: "v", Type: plot.TypeNumber},
}

func sqlite(t *testing.T) *Dialect {
	d, err := GetDialect("sqlite")
	require.NoError(t, err)
	return d
}

func TestBoxplotOutliers(t *testing.T) {
	db := openDB(t, map[string][]float64{
		"A": {1, 2, 3, 4, 5, 100},
		"B": {1, 2, 3, 4, 5},
	})
	aes := plot.Mappings{"x": plot.Col("grp"), "y": plot.Col("v")}
	r, err := Apply(plot.Boxplot, "SELECT * FROM t", boxSchema, aes, nil, nil, sqlite(t))
	require.NoError(t, err)
	require.NotNil(t, r)

	stats := make(map[string]map[string]float64)
	outliers := make(map[string][]float64)
	for _, row := range runBoxplot(t, db, r.Query) {
		if row.typ == "outlier" {
			outliers[row.group] = append(outliers[row.group], row.value)
			continue
		}
		if stats[row.group] == nil {
			stats[row.group] = make(map[string]float64)
		}
		stats[row.group][row.typ] = row.value
	}
	assert.Equal(t, map[string][]float64{"A": {100}}, outliers)

	a := stats["A"]
	assert.InDelta(t, 2.25, a["q1"], 1e-9)
	assert.InDelta(t, 3.5, a["median"], 1e-9)
	assert.InDelta(t, 4.75, a["q3"], 1e-9)
	assert.InDelta(t, 8.5, a["upper"], 1e-9)
	assert.InDelta(t, 1, a["lower"], 1e-9)

	b := stats["B"]
	assert.InDelta(t, 2, b["q1"], 1e-9)
	assert.InDelta(t, 3, b["median"], 1e-9)
	assert.InDelta(t, 5, b["upper"], 1e-9)
	assert.InDelta(t, 1, b["lower"], 1e-9)
}

func TestBoxplotWhisker(t *testing.T) {
	db := openDB(t, map[string][]float64{"A": {10, 10, 10, 20, 20, 20, 50}})
	aes := plot.Mappings{"x": plot.Col("grp"), "y": plot.Col("v")}
	r, err := Apply(plot.Boxplot, "SELECT * FROM t", boxSchema, aes, nil, map[string]interface{}{"outliers": false}, sqlite(t))
	require.NoError(t, err)
	got := make(map[string]float64)
	for _, row := range runBoxplot(t, db, r.Query) {
		got[row.typ] = row.value
	}
	assert.InDelta(t, 10, got["q1"], 1e-9)
	assert.InDelta(t, 20, got["q3"], 1e-9)
	assert.InDelta(t, 35, got["upper"], 1e-9)
	_, ok := got["outlier"]
	assert.False(t, ok)
	assert.NotContains(t, r.Query, "'outlier'")
}

func TestOrientation(t *testing.T) {
	schema := plot.Schema{
		{Name: "n", Type: plot.TypeNumber},
		{Name: "m", Type: plot.TypeNumber},
		{Name: "s", Type: plot.TypeString, Discrete: true},
	}
	check := func(x, y string, explicit interface{}, wantGroup string) {
		t.Helper()
		g, v, err := Orientation(schema, plot.Mappings{"x": plot.Col(x), "y": plot.Col(y)}, explicit)
		require.NoError(t, err)
		assert.Equal(t, wantGroup, g)
		assert.NotEqual(t, g, v)
	}
	check("s", "n", nil, "x")
	check("n", "s", nil, "y")
	// Ambiguous orientations fall back to x.
	check("n", "m", nil, "x")
	check("s", "s", nil, "x")
	check("s", "n", "y", "y")

	_, _, err := Orientation(schema, plot.Mappings{"x": plot.Col("s"), "y": plot.Col("n")}, "diagonal")
	assert.True(t, plot.IsValidation(err))
}

func TestBoxplotErrors(t *testing.T) {
	aes := plot.Mappings{"x": plot.Col("grp"), "y": plot.Col("v")}
	_, err := Apply(plot.Boxplot, "SELECT * FROM t", boxSchema, aes, nil, map[string]interface{}{"coef": "wide"}, nil)
	var v *plot.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "coef", v.Property)

	_, err = Apply(plot.Boxplot, "SELECT * FROM t", boxSchema[:1], aes, nil, nil, nil)
	assert.True(t, plot.IsInternal(err))
	assert.Contains(t, err.Error(), "Missing column info for 'v'")
}

func TestIdentity(t *testing.T) {
	r, err := Apply(plot.Point, "SELECT 1", nil, nil, nil, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, "x", Remap(&plot.Layer{Mappings: plot.Mappings{"x": plot.Col("x")}}, nil).Mappings["x"].Column)
}

func TestDensity(t *testing.T) {
	db := openDB(t, map[string][]float64{"A": {0, 10}, "B": {5}})
	schema := boxSchema
	aes := plot.Mappings{"x": plot.Col("v"), "fill": plot.Col("grp")}
	l := &plot.Layer{Geom: plot.Density, Mappings: aes}
	groups := GroupColumns(l, schema)
	assert.Equal(t, []string{"grp"}, groups)

	r, err := Apply(plot.Density, "SELECT * FROM t", schema, aes, groups,
		map[string]interface{}{"kernel": "rectangular", "bandwidth": 1}, sqlite(t))
	require.NoError(t, err)

	rows, err := db.Query(r.Query)
	require.NoError(t, err, r.Query)
	defer rows.Close()
	type pt struct{ x, y float64 }
	byGroup := make(map[string][]pt)
	for rows.Next() {
		var g string
		var p pt
		require.NoError(t, rows.Scan(&g, &p.x, &p.y))
		byGroup[g] = append(byGroup[g], p)
	}
	require.NoError(t, rows.Err())

	a := byGroup["A"]
	require.Len(t, a, GridPoints)
	require.Len(t, byGroup["B"], GridPoints)
	assert.InDelta(t, -3, a[0].x, 1e-9)
	assert.InDelta(t, 13, a[len(a)-1].x, 1e-9)

	var area, peak float64
	for i, p := range a {
		if p.y > peak {
			peak = p.y
		}
		if i > 0 {
			area += (p.x - a[i-1].x) * (p.y + a[i-1].y) / 2
		}
	}
	assert.InDelta(t, 0.25, peak, 1e-9)
	assert.InDelta(t, 1, area, 0.05)
}

func TestDensitySQL(t *testing.T) {
	schema := plot.Schema{
		{Name: "cat", Type: plot.TypeString, Discrete: true},
		{Name: "my value", Type: plot.TypeNumber},
		{Name: "w", Type: plot.TypeInteger},
	}
	aes := plot.Mappings{"x": plot.Col("cat"), "y": plot.Col("my value"), "weight": plot.Col("w")}
	pg, err := GetDialect("postgresql")
	require.NoError(t, err)
	r, err := Apply(plot.Violin, "SELECT * FROM data", schema, aes, nil, map[string]interface{}{"adjust": 2}, pg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.Query, "WITH RECURSIVE __ggvl_src__ AS (SELECT * FROM data)"))
	assert.Contains(t, r.Query, `CAST("my value" AS DOUBLE PRECISION)`)
	assert.Contains(t, r.Query, "STDDEV_SAMP(__ggvl_v__)")
	assert.Contains(t, r.Query, "2 * 1.06 *")
	assert.Contains(t, r.Query, "EXP(-0.5 *")
	assert.Contains(t, r.Query, fmt.Sprintf("WHERE __ggvl_i__ < %d", GridPoints-1))
	assert.Equal(t, []string{"weight"}, r.Consumed)
	assert.Equal(t, map[string]string{"y": "value", "width": "density"}, r.Mappings)

	l := Remap(&plot.Layer{Geom: plot.Violin, Mappings: aes}, r)
	assert.Equal(t, naming.StatColumn("value"), l.Mappings["y"].Column)
	assert.Equal(t, "my value", l.Mappings["y"].DisplayName())
	assert.Equal(t, "density", l.Mappings["width"].DisplayName())
	assert.Equal(t, "cat", l.Mappings["x"].Column)
	_, ok := l.Mappings["weight"]
	assert.False(t, ok)
	assert.Equal(t, []string{"weight"}, l.Consumed)
	assert.NoError(t, l.Validate(0))

	_, err = Apply(plot.Density, "SELECT * FROM data", schema, plot.Mappings{"x": plot.Col("cat")}, nil, nil, pg)
	assert.True(t, plot.IsValidation(err))
	_, err = Apply(plot.Density, "SELECT * FROM data", schema, plot.Mappings{"x": plot.Col("w")}, nil, map[string]interface{}{"kernel": "cosine"}, pg)
	assert.True(t, plot.IsValidation(err))
}

func TestDialects(t *testing.T) {
	d, err := GetDialect("")
	require.NoError(t, err)
	assert.Equal(t, "generic", d.Name)
	assert.Equal(t, "FLOOR(x)", d.Floor("x"))
	assert.Equal(t, "CAST(x AS INTEGER)", sqlite(t).Floor("x"))
	assert.Equal(t, "col_1", d.Quote("col_1"))
	assert.Equal(t, `"a ""b"""`, d.Quote(`a "b"`))
	_, err = GetDialect("oracle")
	assert.True(t, plot.IsValidation(err))
}
