// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/ggvl/plot"
)

const sample = `name,n,v,day,when
a,1,1.5,2024-01-02,2024-01-02 10:00:00
b,2,,2024-01-03,2024-01-03 11:30:00
`

func TestReadCSV(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "n", "v", "day", "when"}, tab.Columns())
	assert.Equal(t, []string{"a", "b"}, tab.Column("name"))
	assert.Equal(t, []int64{1, 2}, tab.Column("n"))
	v := tab.Column("v").([]float64)
	assert.Equal(t, 1.5, v[0])
	assert.True(t, math.IsNaN(v[1]))
	assert.Equal(t, []plot.Date{plot.NewDate(2024, 1, 2), plot.NewDate(2024, 1, 3)}, tab.Column("day"))
	when := tab.Column("when").([]time.Time)
	assert.True(t, when[1].Equal(time.Date(2024, 1, 3, 11, 30, 0, 0, time.UTC)))

	// Bare numbers are never dates.
	tab, err = ReadCSV(strings.NewReader("id\n20240102\n20240103\n"))
	require.NoError(t, err)
	assert.Equal(t, []int64{20240102, 20240103}, tab.Column("id"))

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, db.LoadCSV(ctx, "t", strings.NewReader(sample)))

	tab, err := db.Execute(ctx, "SELECT * FROM t ORDER BY n")
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []string{"a", "b"}, tab.Column("name"))
	assert.Equal(t, []int64{1, 2}, tab.Column("n"))
	v, ok := tab.Column("v").([]float64)
	require.True(t, ok, "%T", tab.Column("v"))
	assert.Equal(t, 1.5, v[0])
	assert.True(t, math.IsNaN(v[1]))
	assert.Equal(t, []plot.Date{plot.NewDate(2024, 1, 2), plot.NewDate(2024, 1, 3)}, tab.Column("day"))
	when, ok := tab.Column("when").([]time.Time)
	require.True(t, ok, "%T", tab.Column("when"))
	assert.True(t, when[0].Equal(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)), "%v", when[0])

	tab, err = db.Execute(ctx, "SELECT COUNT(*) AS c, AVG(n) AS m FROM t")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, tab.Column("c"))
	assert.Equal(t, []float64{1.5}, tab.Column("m"))

	tab, err = db.Execute(ctx, "SELECT n, name FROM t WHERE n > 10")
	require.NoError(t, err)
	assert.Equal(t, 0, tab.Len())
	assert.Equal(t, []int64{}, tab.Column("n"))
	assert.Equal(t, []string{}, tab.Column("name"))

	_, err = db.Execute(ctx, "SELECT nope FROM t")
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	src := new(table.Builder).
		Add("label", []string{"x", "y", "z"}).
		Add("ok", []bool{true, false, true}).
		Add("mixed", []interface{}{"a", nil, "c"}).
		Done()
	require.NoError(t, db.Register(ctx, "my table", src))
	// Registering again replaces the table.
	require.NoError(t, db.Register(ctx, "my table", src))

	tab, err := db.Execute(ctx, `SELECT label, ok, mixed FROM "my table" ORDER BY label`)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, tab.Column("label"))
	assert.Equal(t, []int64{1, 0, 1}, tab.Column("ok"))
	assert.Equal(t, []interface{}{"a", nil, "c"}, tab.Column("mixed"))
}

func TestNarrow(t *testing.T) {
	col, err := narrow([]interface{}{int64(1), nil}, "")
	require.NoError(t, err)
	f := col.([]float64)
	assert.Equal(t, 1.0, f[0])
	assert.True(t, math.IsNaN(f[1]))

	col, err = narrow([]interface{}{"a", nil}, "TEXT")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", nil}, col)

	col, err = narrow([]interface{}{"12:30:00", nil}, "TIME")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{plot.NewTimeOfDay(12, 30, 0), nil}, col)

	_, err = narrow([]interface{}{"not a date"}, "DATE")
	assert.Error(t, err)
}
