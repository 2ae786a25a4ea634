// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date at midnight UTC.
type Date struct{ time.Time }

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// TimeOfDay is a wall-clock time as an offset from midnight.
type TimeOfDay time.Duration

// NewTimeOfDay returns the time h:m:s.
func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

func (t TimeOfDay) String() string {
	return time.Unix(0, int64(t)).UTC().Format(timeLayout)
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
	timeLayout     = "15:04:05"
)

// ToFloat converts a numeric or temporal value to float64. Temporal
// values convert to milliseconds since the Unix epoch (or since
// midnight for TimeOfDay). It returns false for nil, NaN, and
// non-numeric values.
func ToFloat(v interface{}) (float64, bool) {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case int16:
		f = float64(v)
	case int8:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint8:
		f = float64(v)
	case time.Time:
		return float64(v.UnixMilli()), true
	case Date:
		return float64(v.UnixMilli()), true
	case TimeOfDay:
		return float64(time.Duration(v).Milliseconds()), true
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// FormatNumber formats x in the shortest form that round-trips.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatValue formats v the way label overrides and discrete
// domains key it.
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.UTC().Format(dateTimeLayout)
	case Date:
		return v.String()
	case TimeOfDay:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	if f, ok := ToFloat(v); ok {
		return FormatNumber(f)
	}
	return fmt.Sprint(v)
}

// FormatTemporal formats ms, a value produced by ToFloat, as ISO
// text for a temporal scale of kind k.
func FormatTemporal(ms float64, k ScaleKind) string {
	t := time.UnixMilli(int64(math.Round(ms))).UTC()
	switch k {
	case ScaleDate:
		return t.Format(dateLayout)
	case ScaleTime:
		return t.Format(timeLayout)
	}
	return t.Format(dateTimeLayout)
}

// JSONValue converts a table cell to a JSON-encodable value. NaN and
// infinities become nil and temporal values become ISO strings.
func JSONValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		return JSONValue(float64(v))
	case time.Time:
		return v.UTC().Format(dateTimeLayout)
	case Date:
		return v.String()
	case TimeOfDay:
		return v.String()
	}
	return v
}

// Values returns the elements of a column slice as interface
// values. NaN floats become nil.
func Values(col interface{}) []interface{} {
	if vs, ok := col.([]interface{}); ok {
		out := make([]interface{}, len(vs))
		for i, v := range vs {
			if f, ok := v.(float64); ok && math.IsNaN(f) {
				v = nil
			}
			out[i] = v
		}
		return out
	}
	rv := reflect.ValueOf(col)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		v := rv.Index(i).Interface()
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			v = nil
		}
		out[i] = v
	}
	return out
}

func join(xs []string) string {
	return strings.Join(xs, ", ")
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}
