// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "sort"

// A Mapping binds an aesthetic to either a column or a literal
// constant.
type Mapping struct {
	// Column is the name of the mapped column.
	Column string

	// Original is the display name of the column before a
	// statistical transform renamed it. It is "" if the column
	// was not renamed.
	Original string

	// Dummy indicates a placeholder column created by a
	// statistical transform. Dummy columns get no axis.
	Dummy bool

	// Literal is the constant value if IsLiteral is set.
	Literal   interface{}
	IsLiteral bool
}

// Col returns a column mapping.
func Col(name string) Mapping {
	return Mapping{Column: name}
}

// Lit returns a literal mapping.
func Lit(v interface{}) Mapping {
	return Mapping{Literal: v, IsLiteral: true}
}

// DisplayName returns the name to use in titles.
func (m Mapping) DisplayName() string {
	if m.Original != "" {
		return m.Original
	}
	return m.Column
}

// Mappings maps aesthetic names to mappings.
type Mappings map[string]Mapping

// Names returns the mapped aesthetics in sorted order.
func (m Mappings) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column returns the column mapped to aes, if aes is mapped to a
// column.
func (m Mappings) Column(aes string) (string, bool) {
	v, ok := m[aes]
	if !ok || v.IsLiteral {
		return "", false
	}
	return v.Column, true
}

// Clone returns a shallow copy of m.
func (m Mappings) Clone() Mappings {
	out := make(Mappings, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var positional = map[string]string{
	"x": "x", "xmin": "x", "xmax": "x", "xend": "x",
	"y": "y", "ymin": "y", "ymax": "y", "yend": "y",
}

// IsPositional reports whether aes is a position aesthetic.
func IsPositional(aes string) bool {
	_, ok := positional[aes]
	return ok
}

// Primary returns the aesthetic that owns aes's scale and title.
// Position variants (xmin, yend, ...) belong to x or y; color
// aliases belong to color; every other aesthetic is its own primary.
func Primary(aes string) string {
	if p, ok := positional[aes]; ok {
		return p
	}
	return Canonical(aes)
}

// Family returns the aesthetics whose primary is primary, with the
// primary first.
func Family(primary string) []string {
	switch primary {
	case "x":
		return []string{"x", "xmin", "xmax", "xend"}
	case "y":
		return []string{"y", "ymin", "ymax", "yend"}
	}
	return []string{primary}
}

// Canonical maps aesthetic spelling variants to a single name.
func Canonical(aes string) string {
	switch aes {
	case "colour", "col":
		return "color"
	}
	return aes
}
