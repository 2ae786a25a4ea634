// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/araddon/dateparse"

	"github.com/aclements/ggvl/plot"
)

var sqlTypes = map[plot.ColumnType]string{
	plot.TypeNumber:   "REAL",
	plot.TypeInteger:  "INTEGER",
	plot.TypeString:   "TEXT",
	plot.TypeBool:     "INTEGER",
	plot.TypeDate:     "DATE",
	plot.TypeDateTime: "TIMESTAMP",
	plot.TypeTime:     "TIME",
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Register stores t as table name, replacing any existing table of
// that name.
func (d *DB) Register(ctx context.Context, name string, t *table.Table) error {
	cols := t.Columns()
	defs := make([]string, len(cols))
	vals := make([][]interface{}, len(cols))
	for i, c := range cols {
		typ, ok := sqlTypes[plot.TypeOf(t.Column(c))]
		if !ok {
			typ = "TEXT"
		}
		defs[i] = quote(c) + " " + typ
		vals[i] = plot.Values(t.Column(c))
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(name)); err != nil {
		return fmt.Errorf("registering %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", quote(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("registering %s: %w", name, err)
	}
	if len(cols) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", quote(name), marks))
		if err != nil {
			return fmt.Errorf("registering %s: %w", name, err)
		}
		defer stmt.Close()
		row := make([]interface{}, len(cols))
		for r := 0; r < t.Len(); r++ {
			for i := range cols {
				row[i] = sqlValue(vals[i][r])
			}
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return fmt.Errorf("registering %s: %w", name, err)
			}
		}
	}
	return tx.Commit()
}

// sqlValue converts a table cell to a value the driver stores in
// the same form Execute reads back.
func sqlValue(v interface{}) interface{} {
	switch v := v.(type) {
	case plot.Date, plot.TimeOfDay:
		return plot.FormatValue(v)
	case time.Time:
		return v.UTC().Format("2006-01-02 15:04:05.999")
	case bool:
		if v {
			return int64(1)
		}
		return int64(0)
	}
	return v
}

// LoadCSV reads a CSV file with a header row from r and registers it
// as table name.
func (d *DB) LoadCSV(ctx context.Context, name string, r io.Reader) error {
	t, err := ReadCSV(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return d.Register(ctx, name, t)
}

// ReadCSV reads a CSV file with a header row. Each column gets the
// narrowest type every non-empty cell parses as: integer, number,
// date, datetime, or string. Empty cells of numeric columns are NaN.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}
	header := records[0]
	records = records[1:]

	var b table.Builder
	for i, name := range header {
		cells := make([]string, len(records))
		for j, rec := range records {
			if i < len(rec) {
				cells[j] = strings.TrimSpace(rec[i])
			}
		}
		b.Add(strings.TrimSpace(name), inferColumn(cells))
	}
	return b.Done(), nil
}

func inferColumn(cells []string) interface{} {
	var nonEmpty []string
	for _, c := range cells {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 {
		return cells
	}

	allInt := len(nonEmpty) == len(cells)
	for _, c := range nonEmpty {
		if _, err := strconv.ParseInt(c, 10, 64); err != nil {
			allInt = false
			break
		}
	}
	if allInt {
		out := make([]int64, len(cells))
		for i, c := range cells {
			out[i], _ = strconv.ParseInt(c, 10, 64)
		}
		return out
	}

	if floats, ok := parseFloats(cells); ok {
		return floats
	}

	if times, ok := parseTimes(nonEmpty); ok && len(nonEmpty) == len(cells) {
		dateOnly := true
		for _, t := range times {
			if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
				dateOnly = false
				break
			}
		}
		if dateOnly {
			out := make([]plot.Date, len(times))
			for i, t := range times {
				out[i] = plot.NewDate(t.Year(), t.Month(), t.Day())
			}
			return out
		}
		return times
	}
	return cells
}

func parseFloats(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if c == "" || strings.EqualFold(c, "NA") || strings.EqualFold(c, "null") {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func parseTimes(cells []string) ([]time.Time, bool) {
	out := make([]time.Time, len(cells))
	for i, c := range cells {
		// dateparse reads bare digit strings as Unix timestamps.
		if !strings.ContainsAny(c, "-/:") {
			return nil, false
		}
		t, err := dateparse.ParseIn(c, time.UTC)
		if err != nil {
			return nil, false
		}
		out[i] = t.UTC()
	}
	return out, true
}
