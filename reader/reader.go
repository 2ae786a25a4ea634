// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reader executes SQL against a SQLite database and returns
// the results as tables.
package reader

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/araddon/dateparse"
	_ "modernc.org/sqlite"

	"github.com/aclements/ggvl/plot"
)

// DB is a SQLite database.
type DB struct {
	db *sql.DB
}

// Open opens the SQLite database dsn. An empty dsn or ":memory:"
// opens a private in-memory database.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dsn, err)
	}
	if dsn == ":memory:" {
		// Every connection to :memory: is a new database.
		db.SetMaxOpenConns(1)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Execute runs query and returns its result. Integer columns become
// []int64, real columns []float64 with NULL as NaN, text columns
// []string, and anything else []interface{}. Columns declared as
// DATE, DATETIME, TIMESTAMP or TIME hold plot.Date, time.Time and
// plot.TimeOfDay values.
func (d *DB) Execute(ctx context.Context, query string) (*table.Table, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	cols := make([][]interface{}, len(types))
	scan := make([]interface{}, len(types))
	ptrs := make([]interface{}, len(types))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range scan {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	var b table.Builder
	seen := make(map[string]int)
	for i, ct := range types {
		name := ct.Name()
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		seen[ct.Name()]++
		col, err := narrow(cols[i], ct.DatabaseTypeName())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		b.Add(name, col)
	}
	return b.Done(), nil
}

// declaredKind returns the temporal column type of a declared SQL
// type, or TypeUnknown.
func declaredKind(decl string) plot.ColumnType {
	decl = strings.ToUpper(decl)
	switch {
	case strings.HasPrefix(decl, "DATETIME"), strings.HasPrefix(decl, "TIMESTAMP"):
		return plot.TypeDateTime
	case strings.HasPrefix(decl, "DATE"):
		return plot.TypeDate
	case strings.HasPrefix(decl, "TIME"):
		return plot.TypeTime
	}
	return plot.TypeUnknown
}

// narrow converts scanned values to the tightest column slice.
func narrow(vals []interface{}, decl string) (interface{}, error) {
	if k := declaredKind(decl); k != plot.TypeUnknown {
		return temporalColumn(vals, k)
	}

	var nInt, nFloat, nString, nNil int
	for _, v := range vals {
		switch v.(type) {
		case nil:
			nNil++
		case int64:
			nInt++
		case float64:
			nFloat++
		case string:
			nString++
		}
	}
	n := len(vals)
	switch {
	case n == 0:
		return emptyColumn(decl), nil
	case nInt == n:
		out := make([]int64, n)
		for i, v := range vals {
			out[i] = v.(int64)
		}
		return out, nil
	case nInt+nFloat+nNil == n && nInt+nFloat > 0:
		out := make([]float64, n)
		for i, v := range vals {
			switch v := v.(type) {
			case int64:
				out[i] = float64(v)
			case float64:
				out[i] = v
			default:
				out[i] = math.NaN()
			}
		}
		return out, nil
	case nString == n:
		out := make([]string, n)
		for i, v := range vals {
			out[i] = v.(string)
		}
		return out, nil
	}
	return vals, nil
}

func emptyColumn(decl string) interface{} {
	decl = strings.ToUpper(decl)
	switch {
	case strings.Contains(decl, "INT"):
		return []int64{}
	case strings.Contains(decl, "REAL"), strings.Contains(decl, "FLOA"), strings.Contains(decl, "DOUB"), strings.Contains(decl, "NUM"):
		return []float64{}
	}
	return []string{}
}

// temporalColumn converts vals to a column of kind k. NULLs become
// nil elements of a []interface{} column.
func temporalColumn(vals []interface{}, k plot.ColumnType) (interface{}, error) {
	conv := make([]interface{}, len(vals))
	hasNil := false
	for i, v := range vals {
		if v == nil {
			hasNil = true
			continue
		}
		t, err := parseTemporal(v, k)
		if err != nil {
			return nil, err
		}
		conv[i] = t
	}
	if hasNil || len(vals) == 0 {
		return conv, nil
	}
	switch k {
	case plot.TypeDate:
		out := make([]plot.Date, len(conv))
		for i, v := range conv {
			out[i] = v.(plot.Date)
		}
		return out, nil
	case plot.TypeTime:
		out := make([]plot.TimeOfDay, len(conv))
		for i, v := range conv {
			out[i] = v.(plot.TimeOfDay)
		}
		return out, nil
	}
	out := make([]time.Time, len(conv))
	for i, v := range conv {
		out[i] = v.(time.Time)
	}
	return out, nil
}

func parseTemporal(v interface{}, k plot.ColumnType) (interface{}, error) {
	var t time.Time
	switch v := v.(type) {
	case time.Time:
		t = v.UTC()
	case string:
		if k == plot.TypeTime {
			return parseTimeOfDay(v)
		}
		var err error
		t, err = dateparse.ParseIn(v, time.UTC)
		if err != nil {
			return nil, err
		}
	case int64:
		// Unix seconds.
		t = time.Unix(v, 0).UTC()
	case float64:
		t = time.UnixMilli(int64(v * 1000)).UTC()
	default:
		return nil, fmt.Errorf("cannot convert %T to %s", v, k)
	}
	switch k {
	case plot.TypeDate:
		return plot.NewDate(t.Year(), t.Month(), t.Day()), nil
	case plot.TypeTime:
		return plot.NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
	}
	return t, nil
}

func parseTimeOfDay(s string) (plot.TimeOfDay, error) {
	for _, layout := range []string{"15:04:05.999999999", "15:04"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return plot.TimeOfDay(t.Sub(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC))), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}
