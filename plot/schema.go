// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"reflect"
	"time"

	"github.com/aclements/go-gg/table"
)

// ColumnType is the primitive type of a query result column.
type ColumnType int

const (
	TypeUnknown ColumnType = iota
	TypeNumber
	TypeInteger
	TypeString
	TypeBool
	TypeDate
	TypeDateTime
	TypeTime
)

var columnTypeNames = [...]string{
	TypeUnknown:  "unknown",
	TypeNumber:   "number",
	TypeInteger:  "integer",
	TypeString:   "string",
	TypeBool:     "bool",
	TypeDate:     "date",
	TypeDateTime: "datetime",
	TypeTime:     "time",
}

func (t ColumnType) String() string {
	if t < 0 || int(t) >= len(columnTypeNames) {
		return "unknown"
	}
	return columnTypeNames[t]
}

// IsNumeric reports whether t holds numbers.
func (t ColumnType) IsNumeric() bool {
	return t == TypeNumber || t == TypeInteger
}

// IsTemporal reports whether t holds dates or times.
func (t ColumnType) IsTemporal() bool {
	return t == TypeDate || t == TypeDateTime || t == TypeTime
}

// ScaleKind returns the scale kind inferred for columns of type t.
func (t ColumnType) ScaleKind() ScaleKind {
	switch t {
	case TypeNumber, TypeInteger:
		return ScaleContinuous
	case TypeDate:
		return ScaleDate
	case TypeDateTime:
		return ScaleDateTime
	case TypeTime:
		return ScaleTime
	}
	return ScaleDiscrete
}

// ColumnInfo describes one column of a query result.
type ColumnInfo struct {
	Name     string
	Type     ColumnType
	Discrete bool
}

// Schema describes the columns of a query result, in order.
type Schema []ColumnInfo

// Lookup returns the column named name.
func (s Schema) Lookup(name string) (ColumnInfo, bool) {
	for _, c := range s {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Name
	}
	return out
}

// SchemaOf inspects the columns of t.
func SchemaOf(t *table.Table) Schema {
	if t == nil {
		return nil
	}
	var s Schema
	for _, name := range t.Columns() {
		typ := TypeOf(t.Column(name))
		s = append(s, ColumnInfo{Name: name, Type: typ, Discrete: typ == TypeString || typ == TypeBool || typ == TypeUnknown})
	}
	return s
}

var (
	timeType      = reflect.TypeOf(time.Time{})
	dateType      = reflect.TypeOf(Date{})
	timeOfDayType = reflect.TypeOf(TimeOfDay(0))
)

// TypeOf returns the column type of a column slice. For []interface{}
// columns the type of the first non-nil element decides.
func TypeOf(col interface{}) ColumnType {
	if vs, ok := col.([]interface{}); ok {
		for _, v := range vs {
			if v != nil {
				return typeOfElem(reflect.TypeOf(v))
			}
		}
		return TypeUnknown
	}
	t := reflect.TypeOf(col)
	if t == nil || t.Kind() != reflect.Slice {
		return TypeUnknown
	}
	return typeOfElem(t.Elem())
}

func typeOfElem(t reflect.Type) ColumnType {
	switch t {
	case timeType:
		return TypeDateTime
	case dateType:
		return TypeDate
	case timeOfDayType:
		return TypeTime
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInteger
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBool
	}
	return TypeUnknown
}
