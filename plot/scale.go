// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"strings"

	"github.com/aclements/ggvl/transform"
)

// ScaleKind is the type of a scale.
type ScaleKind int

const (
	// ScaleAuto asks the resolver to infer the kind from data.
	// Resolved scales never have this kind.
	ScaleAuto ScaleKind = iota
	ScaleContinuous
	ScaleDiscrete
	ScaleBinned
	ScaleDate
	ScaleDateTime
	ScaleTime
	ScaleIdentity
)

var scaleKindNames = [...]string{
	ScaleAuto:       "auto",
	ScaleContinuous: "continuous",
	ScaleDiscrete:   "discrete",
	ScaleBinned:     "binned",
	ScaleDate:       "date",
	ScaleDateTime:   "datetime",
	ScaleTime:       "time",
	ScaleIdentity:   "identity",
}

func (k ScaleKind) String() string {
	if k < 0 || int(k) >= len(scaleKindNames) {
		return fmt.Sprintf("ScaleKind(%d)", int(k))
	}
	return scaleKindNames[k]
}

// ParseScaleKind returns the scale kind named name.
func ParseScaleKind(name string) (ScaleKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range scaleKindNames {
		if n == name {
			return ScaleKind(i), nil
		}
	}
	return ScaleAuto, Validationf("unknown scale type '%s'", name)
}

// IsTemporal reports whether k is a date, datetime or time scale.
func (k ScaleKind) IsTemporal() bool {
	return k == ScaleDate || k == ScaleDateTime || k == ScaleTime
}

// TransformKind returns the temporal transform for a temporal scale
// kind, or Identity.
func (k ScaleKind) TransformKind() transform.Kind {
	switch k {
	case ScaleDate:
		return transform.Date
	case ScaleDateTime:
		return transform.DateTime
	case ScaleTime:
		return transform.Time
	}
	return transform.Identity
}

// OutputRange is a scale's output: either explicit values or a
// palette name.
type OutputRange struct {
	Values  []interface{}
	Palette string
}

// IsZero reports whether r specifies nothing.
func (r OutputRange) IsZero() bool {
	return r.Values == nil && r.Palette == ""
}

// A Label overrides the rendered label of one value. If Suppress is
// set, the value gets no label.
type Label struct {
	Text     string
	Suppress bool
}

// ScaleSpec is a scale as written by the user, before resolution.
type ScaleSpec struct {
	Aesthetic string
	Kind      ScaleKind

	// Input is the user's input range. nil elements are
	// placeholders to fill from data.
	Input []interface{}

	Output    OutputRange
	Transform string

	// Properties are the SETTING key/value pairs.
	Properties map[string]interface{}

	// Labels maps formatted values to label overrides.
	Labels map[string]Label
}

// Scale is a resolved scale.
type Scale struct {
	Aesthetic string
	Kind      ScaleKind

	// Domain is the resolved input range. Continuous scales have
	// [min, max]; discrete scales have the sorted unique values;
	// temporal scales have ISO strings; identity scales have nil.
	Domain []interface{}

	Range     OutputRange
	Transform transform.Kind

	// Properties are the validated properties with defaults
	// applied.
	Properties map[string]interface{}

	// Breaks are the resolved break positions, if any.
	Breaks []float64

	Labels map[string]Label
}

// Prop returns property name, or nil.
func (s *Scale) Prop(name string) interface{} {
	return s.Properties[name]
}

// Bool returns boolean property name.
func (s *Scale) Bool(name string) bool {
	b, _ := s.Properties[name].(bool)
	return b
}

// Str returns string property name.
func (s *Scale) Str(name string) string {
	str, _ := s.Properties[name].(string)
	return str
}

// IsDiscrete reports whether the scale maps categories.
func (s *Scale) IsDiscrete() bool {
	return s.Kind == ScaleDiscrete
}

// Label returns the override for the formatted value v.
func (s *Scale) Label(v string) (Label, bool) {
	l, ok := s.Labels[v]
	return l, ok
}
