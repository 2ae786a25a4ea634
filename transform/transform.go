// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform implements the numeric transforms that can be
// attached to a scale.
//
// A transform defines the domain of values it accepts, a forward and
// inverse mapping, and how to place major and minor breaks. Most
// transforms do not change stored data: the renderer translates them
// into native scale types. The temporal kinds are numeric identities
// that mark a field as temporal, and the discrete kinds (String,
// Bool, Integer) only affect casting and break placement.
package transform

import (
	"fmt"
	"math"
	"strings"
)

// Kind is a transform kind.
type Kind int

const (
	Identity Kind = iota
	Log10
	Ln
	Log2
	Sqrt
	Square
	Exp10
	Exp2
	Exp
	Asinh
	PseudoLog
	Date
	DateTime
	Time
	String
	Bool
	Integer
)

var kindNames = [...]string{
	Identity:  "identity",
	Log10:     "log10",
	Ln:        "ln",
	Log2:      "log2",
	Sqrt:      "sqrt",
	Square:    "square",
	Exp10:     "exp10",
	Exp2:      "exp2",
	Exp:       "exp",
	Asinh:     "asinh",
	PseudoLog: "pseudo_log",
	Date:      "date",
	DateTime:  "datetime",
	Time:      "time",
	String:    "string",
	Bool:      "bool",
	Integer:   "integer",
}

var aliases = map[string]Kind{
	"linear":    Identity,
	"log":       Log10,
	"pow2":      Square,
	"int":       Integer,
	"str":       String,
	"boolean":   Bool,
	"pseudolog": PseudoLog,
	"timestamp": DateTime,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Parse returns the transform kind named by name. Names are case
// insensitive.
func Parse(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	return Identity, fmt.Errorf("unknown transform %q", name)
}

// IsTemporal reports whether k tags values as dates or times.
func (k Kind) IsTemporal() bool {
	return k == Date || k == DateTime || k == Time
}

// IsDiscrete reports whether k casts values to a discrete type.
func (k Kind) IsDiscrete() bool {
	return k == String || k == Bool
}

// IsLog reports whether k is one of the logarithmic transforms.
func (k Kind) IsLog() bool {
	return k == Log10 || k == Ln || k == Log2
}

// Base returns the logarithm base of a log transform, or 0.
func (k Kind) Base() float64 {
	switch k {
	case Log10:
		return 10
	case Ln:
		return math.E
	case Log2:
		return 2
	}
	return 0
}

// Domain returns the closed interval of values k accepts. Bounds may
// be infinite.
func (k Kind) Domain() (lo, hi float64) {
	switch k {
	case Log10, Ln, Log2:
		return math.SmallestNonzeroFloat64, math.Inf(1)
	case Sqrt:
		return 0, math.Inf(1)
	}
	return math.Inf(-1), math.Inf(1)
}

// InDomain reports whether x is finite and inside k's domain.
func (k Kind) InDomain(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	lo, hi := k.Domain()
	return lo <= x && x <= hi
}

// Forward maps x from data space to transformed space.
func (k Kind) Forward(x float64) float64 {
	switch k {
	case Log10:
		return math.Log10(x)
	case Ln:
		return math.Log(x)
	case Log2:
		return math.Log2(x)
	case Sqrt:
		return math.Sqrt(x)
	case Square:
		return x * x
	case Exp10:
		return math.Pow(10, x)
	case Exp2:
		return math.Exp2(x)
	case Exp:
		return math.Exp(x)
	case Asinh:
		return math.Asinh(x)
	case PseudoLog:
		return math.Asinh(x/2) / math.Ln10
	case Integer:
		return math.Round(x)
	}
	return x
}

// Inverse maps x from transformed space back to data space.
func (k Kind) Inverse(x float64) float64 {
	switch k {
	case Log10:
		return math.Pow(10, x)
	case Ln:
		return math.Exp(x)
	case Log2:
		return math.Exp2(x)
	case Sqrt:
		return x * x
	case Square:
		return math.Sqrt(x)
	case Exp10:
		return math.Log10(x)
	case Exp2:
		return math.Log2(x)
	case Exp:
		return math.Log(x)
	case Asinh:
		return math.Sinh(x)
	case PseudoLog:
		return 2 * math.Sinh(x*math.Ln10)
	}
	return x
}
