// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"math"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// obj is a JSON object under construction.
type obj = map[string]interface{}

// rowsOf converts t to row objects tagged with source. If component
// is non-empty, each row also copies that column into
// naming.Component.
func rowsOf(t *table.Table, source, component string) []interface{} {
	cols := t.Columns()
	vals := make([][]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = plot.Values(t.Column(c))
	}
	rows := make([]interface{}, t.Len())
	for r := range rows {
		row := make(obj, len(cols)+1)
		for i, c := range cols {
			row[c] = jsonValue(vals[i][r])
		}
		row[naming.Source] = source
		if component != "" {
			row[naming.Component] = row[component]
		}
		rows[r] = row
	}
	return rows
}

// jsonValue converts a cell to JSON. Timestamps are written in UTC
// with an explicit zone so the renderer does not read them as local
// time. Times of day are anchored to the Unix epoch.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case plot.TimeOfDay:
		return time.Unix(0, 0).Add(time.Duration(v)).UTC().Format(time.RFC3339Nano)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	}
	return plot.JSONValue(v)
}

// dateTime returns a Vega-Lite DateTime object for ms milliseconds
// since the epoch. Times of day keep their 1970-01-01 anchor.
func dateTime(ms float64, k plot.ScaleKind) obj {
	t := time.UnixMilli(int64(math.Round(ms))).UTC()
	o := obj{
		"utc":   true,
		"year":  t.Year(),
		"month": int(t.Month()),
		"date":  t.Day(),
	}
	if k != plot.ScaleDate {
		o["hours"] = t.Hour()
		o["minutes"] = t.Minute()
		o["seconds"] = t.Second()
		if ms := t.Nanosecond() / 1e6; ms != 0 {
			o["milliseconds"] = ms
		}
	}
	return o
}
