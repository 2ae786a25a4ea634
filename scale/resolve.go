// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale resolves user scale specifications against data.
//
// Resolution decides a scale's kind, computes its input domain from
// the columns mapped to it (merging with any partial user range),
// validates its properties, picks a transform, computes breaks, and
// fills in a default output range.
package scale

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/araddon/dateparse"

	"github.com/aclements/ggvl/palette"
	"github.com/aclements/ggvl/plot"
	"github.com/aclements/ggvl/transform"
)

// InferKind returns the scale kind for data of the given column
// types. Any discrete column makes the scale discrete.
func InferKind(types []plot.ColumnType) plot.ScaleKind {
	kind := plot.ScaleAuto
	for _, t := range types {
		k := t.ScaleKind()
		if k == plot.ScaleDiscrete {
			return plot.ScaleDiscrete
		}
		if kind == plot.ScaleAuto {
			kind = k
		} else if kind != k {
			// Mixed numeric and temporal.
			return plot.ScaleDiscrete
		}
	}
	if kind == plot.ScaleAuto {
		return plot.ScaleDiscrete
	}
	return kind
}

// Resolve resolves spec against cols, the column slices mapped to the
// scale's aesthetic family. If spec.Kind is ScaleAuto, the kind is
// inferred from the column types.
func Resolve(spec *plot.ScaleSpec, cols []interface{}) (*plot.Scale, error) {
	aes := spec.Aesthetic
	kind := spec.Kind
	var types []plot.ColumnType
	for _, c := range cols {
		types = append(types, plot.TypeOf(c))
	}
	if kind == plot.ScaleAuto {
		kind = InferKind(types)
	}

	props, err := ResolveProperties(kind, aes, spec.Properties)
	if err != nil {
		return nil, err
	}
	tr, err := resolveTransform(kind, aes, spec.Transform, types)
	if err != nil {
		return nil, err
	}

	s := &plot.Scale{
		Aesthetic:  aes,
		Kind:       kind,
		Transform:  tr,
		Properties: props,
		Labels:     copyLabels(spec.Labels),
	}

	switch kind {
	case plot.ScaleContinuous, plot.ScaleBinned:
		if err := resolveNumeric(s, spec.Input, cols); err != nil {
			return nil, err
		}
	case plot.ScaleDiscrete:
		if err := resolveDiscrete(s, spec.Input, cols); err != nil {
			return nil, err
		}
	case plot.ScaleDate, plot.ScaleDateTime, plot.ScaleTime:
		if err := resolveTemporal(s, spec.Input, cols); err != nil {
			return nil, err
		}
	case plot.ScaleIdentity:
		if spec.Input != nil {
			return nil, plot.Validationf("Identity scale does not support input range specification").ForAesthetic(aes)
		}
	}

	if err := resolveOutput(s, spec.Output); err != nil {
		return nil, err
	}
	return s, nil
}

var allowedTransforms = map[plot.ScaleKind][]transform.Kind{
	plot.ScaleContinuous: {transform.Identity, transform.Log10, transform.Ln, transform.Log2, transform.Sqrt, transform.Square,
		transform.Exp10, transform.Exp2, transform.Exp, transform.Asinh, transform.PseudoLog, transform.Integer},
	plot.ScaleBinned: {transform.Identity, transform.Log10, transform.Ln, transform.Log2, transform.Sqrt,
		transform.Asinh, transform.PseudoLog, transform.Date, transform.DateTime, transform.Time},
	plot.ScaleDiscrete: {transform.Identity, transform.String, transform.Bool, transform.Integer},
	plot.ScaleDate:     {transform.Date},
	plot.ScaleDateTime: {transform.DateTime},
	plot.ScaleTime:     {transform.Time},
	plot.ScaleIdentity: {transform.Identity},
}

func resolveTransform(kind plot.ScaleKind, aes, name string, types []plot.ColumnType) (transform.Kind, error) {
	if name == "" {
		return defaultTransform(kind, aes, types), nil
	}
	tr, err := transform.Parse(name)
	if err != nil {
		return 0, plot.Validationf("unknown transform '%s' for aesthetic '%s'", name, aes).ForAesthetic(aes)
	}
	allowed := allowedTransforms[kind]
	for _, a := range allowed {
		if a == tr {
			return tr, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = a.String()
	}
	return 0, plot.Validationf("%s scale does not support transform '%s'. Allowed: %s", kind, tr, join(names)).ForAesthetic(aes).ForProperty("transform", names)
}

func defaultTransform(kind plot.ScaleKind, aes string, types []plot.ColumnType) transform.Kind {
	if kind.IsTemporal() {
		return kind.TransformKind()
	}
	if kind == plot.ScaleBinned {
		for _, t := range types {
			switch t {
			case plot.TypeDate:
				return transform.Date
			case plot.TypeDateTime:
				return transform.DateTime
			case plot.TypeTime:
				return transform.Time
			}
		}
		if aes == "size" {
			return transform.Sqrt
		}
	}
	return transform.Identity
}

// numericBounds returns the min and max of the numeric values in cols.
func numericBounds(cols []interface{}, conv func(interface{}) (float64, bool)) (lo, hi float64, ok bool) {
	var xs []float64
	for _, c := range cols {
		for _, v := range plot.Values(c) {
			if f, ok := conv(v); ok && !math.IsInf(f, 0) {
				xs = append(xs, f)
			}
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Sample{Xs: xs}.Bounds()
	return lo, hi, true
}

func hasNil(xs []interface{}) bool {
	for _, x := range xs {
		if x == nil {
			return true
		}
	}
	return false
}

// mergeRange fills the nil positions of user with computed.
func mergeRange(user, computed []interface{}) []interface{} {
	out := make([]interface{}, len(user))
	for i, v := range user {
		if v == nil && i < len(computed) {
			v = computed[i]
		}
		out[i] = v
	}
	return out
}

func resolveNumeric(s *plot.Scale, user []interface{}, cols []interface{}) error {
	mult, add := expandFactors(s.Properties)
	var expanded []interface{}
	if lo, hi, ok := numericBounds(cols, plot.ToFloat); ok {
		lo, hi = Expand(lo, hi, mult, add)
		expanded = []interface{}{lo, hi}
	}

	switch {
	case user == nil:
		s.Domain = expanded
	case hasNil(user):
		if expanded == nil {
			s.Domain = append([]interface{}(nil), user...)
		} else {
			s.Domain = mergeRange(user, expanded)
		}
	default:
		s.Domain = append([]interface{}(nil), user...)
		if len(user) == 2 {
			lo, ok1 := toNumber(user[0])
			hi, ok2 := toNumber(user[1])
			if ok1 && ok2 {
				lo, hi = Expand(lo, hi, mult, add)
				s.Domain = []interface{}{lo, hi}
			}
		}
	}
	for i, v := range s.Domain {
		s.Domain[i] = normalizeNumber(v)
	}

	if err := resolveBreaks(s); err != nil {
		return err
	}
	if s.Kind == plot.ScaleBinned && len(s.Breaks) >= 2 {
		// Widen the domain to cover every bin.
		if lo, ok := domainNumber(s, 0); !ok || s.Breaks[0] < lo {
			s.Domain[0] = s.Breaks[0]
		}
		if hi, ok := domainNumber(s, 1); !ok || s.Breaks[len(s.Breaks)-1] > hi {
			s.Domain[1] = s.Breaks[len(s.Breaks)-1]
		}
		if s.Str("oob") == "squish" {
			suppressTerminals(s)
		}
	}
	return nil
}

func domainNumber(s *plot.Scale, i int) (float64, bool) {
	if len(s.Domain) <= i {
		return 0, false
	}
	return toNumber(s.Domain[i])
}

// resolveBreaks computes s.Breaks from the "breaks" property. An
// array is used as given; a count places that many breaks over the
// domain.
func resolveBreaks(s *plot.Scale) error {
	v, ok := s.Properties["breaks"]
	if !ok {
		return nil
	}
	if arr, ok := numberArray(v); ok {
		b := append([]float64(nil), arr...)
		sort.Float64s(b)
		out := b[:0]
		for i, x := range b {
			if i == 0 || x != b[i-1] {
				out = append(out, x)
			}
		}
		if s.Kind == plot.ScaleBinned && len(out) < 2 {
			return plot.Validationf("binned scale for '%s' needs at least 2 distinct breaks, got %d", s.Aesthetic, len(out)).ForAesthetic(s.Aesthetic).ForProperty("breaks", nil)
		}
		s.Breaks = out
		return nil
	}
	n, _ := toNumber(v)
	lo, ok1 := domainNumber(s, 0)
	hi, ok2 := domainNumber(s, 1)
	if !ok1 || !ok2 {
		if s.Domain == nil {
			return nil
		}
		return plot.Validationf("cannot compute breaks for '%s': input range is not numeric", s.Aesthetic).ForAesthetic(s.Aesthetic)
	}
	pretty := true
	if p, ok := s.Properties["pretty"].(bool); ok {
		pretty = p
	}
	s.Breaks = s.Transform.Breaks(lo, hi, int(n), pretty)
	if s.Kind == plot.ScaleBinned && len(s.Breaks) < 2 {
		// Degenerate data; make a single bin.
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
		s.Breaks = []float64{lo, hi}
	}
	return nil
}

func suppressTerminals(s *plot.Scale) {
	if s.Labels == nil {
		s.Labels = make(map[string]plot.Label)
	}
	for _, b := range []float64{s.Breaks[0], s.Breaks[len(s.Breaks)-1]} {
		key := plot.FormatNumber(b)
		if _, ok := s.Labels[key]; !ok {
			s.Labels[key] = plot.Label{Suppress: true}
		}
	}
}

func resolveDiscrete(s *plot.Scale, user []interface{}, cols []interface{}) error {
	if user != nil {
		if hasNil(user) {
			return plot.Validationf("discrete scale for '%s' does not support null placeholders in its input range", s.Aesthetic).ForAesthetic(s.Aesthetic)
		}
		s.Domain = append([]interface{}(nil), user...)
		return nil
	}
	s.Domain = uniqueSorted(cols)
	return nil
}

// uniqueSorted returns the distinct non-nil values of cols. Numbers
// sort numerically, booleans false first, and everything else by its
// formatted text.
func uniqueSorted(cols []interface{}) []interface{} {
	seen := make(map[string]bool)
	var out []interface{}
	for _, c := range cols {
		for _, v := range plot.Values(c) {
			if v == nil {
				continue
			}
			key := plot.FormatValue(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, normalizeNumber(v))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		fa, oka := toNumber(a)
		fb, okb := toNumber(b)
		if oka && okb {
			return fa < fb
		}
		ba, oka := a.(bool)
		bb, okb := b.(bool)
		if oka && okb {
			return !ba && bb
		}
		return plot.FormatValue(a) < plot.FormatValue(b)
	})
	return out
}

// temporalValue converts v to milliseconds. Strings are parsed as
// dates or timestamps in UTC.
func temporalValue(v interface{}) (float64, bool) {
	if f, ok := plot.ToFloat(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return float64(t.Sub(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)).Milliseconds()), true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return 0, false
	}
	return float64(t.UnixMilli()), true
}

func resolveTemporal(s *plot.Scale, user []interface{}, cols []interface{}) error {
	mult, add := expandFactors(s.Properties)
	format := func(lo, hi float64) []interface{} {
		return []interface{}{plot.FormatTemporal(lo, s.Kind), plot.FormatTemporal(hi, s.Kind)}
	}
	var computed []interface{}
	var clo, chi float64
	haveData := false
	if lo, hi, ok := numericBounds(cols, temporalValue); ok {
		clo, chi = Expand(lo, hi, mult, add)
		computed = format(clo, chi)
		haveData = true
	}

	switch {
	case user == nil:
		s.Domain = computed
	case hasNil(user):
		s.Domain = mergeRange(user, computed)
	default:
		if len(user) != 2 {
			s.Domain = append([]interface{}(nil), user...)
			break
		}
		lo, ok1 := temporalValue(user[0])
		hi, ok2 := temporalValue(user[1])
		if !ok1 || !ok2 {
			return plot.Validationf("invalid %s value in input range of '%s'", s.Kind, s.Aesthetic).ForAesthetic(s.Aesthetic)
		}
		s.Domain = format(Expand(lo, hi, mult, add))
	}

	if v, ok := s.Properties["breaks"]; ok {
		if arr, ok := numberArray(v); ok {
			s.Breaks = append([]float64(nil), arr...)
		} else if n, ok := toNumber(v); ok && haveData {
			s.Breaks = s.Transform.Breaks(clo, chi, int(n), false)
		}
	}
	return nil
}

var colorFamily = map[string]bool{"color": true, "fill": true, "stroke": true}

func resolveOutput(s *plot.Scale, user plot.OutputRange) error {
	if s.Kind == plot.ScaleIdentity {
		s.Range = user
		return nil
	}
	n := len(s.Domain)
	bins := len(s.Breaks) - 1
	aes := plot.Canonical(s.Aesthetic)

	if user.Palette != "" {
		return resolvePalette(s, user.Palette, n, bins)
	}
	if user.Values != nil {
		vals := append([]interface{}(nil), user.Values...)
		if colorFamily[aes] {
			for i, v := range vals {
				str, ok := v.(string)
				if !ok {
					continue
				}
				c, err := palette.Normalize(str)
				if err != nil {
					return plot.Validationf("%v in output range of '%s'", err, s.Aesthetic).ForAesthetic(s.Aesthetic)
				}
				vals[i] = c
			}
		}
		if s.Kind == plot.ScaleBinned && colorFamily[aes] && bins > 0 && len(vals) != bins {
			strs := make([]string, len(vals))
			for i, v := range vals {
				strs[i], _ = v.(string)
			}
			colors, err := palette.Interpolate(strs, bins, palette.Oklab)
			if err != nil {
				return plot.Validationf("%v in output range of '%s'", err, s.Aesthetic).ForAesthetic(s.Aesthetic)
			}
			vals = stringsToValues(colors)
		}
		s.Range = plot.OutputRange{Values: vals}
		return nil
	}

	switch s.Kind {
	case plot.ScaleDiscrete:
		switch {
		case colorFamily[aes]:
			s.Range.Values = stringsToValues(palette.Expand(palette.Tableau10, n))
		case aes == "shape":
			s.Range.Values = stringsToValues(palette.Expand(palette.Shapes, n))
		case aes == "linetype":
			s.Range.Values = stringsToValues(palette.Expand(palette.Linetypes, n))
		default:
			s.Range.Values = numericDefault(aes)
		}
	case plot.ScaleContinuous:
		s.Range.Values = numericDefault(aes)
	case plot.ScaleBinned:
		if colorFamily[aes] && bins > 0 {
			colors, err := palette.Interpolate(palette.Viridis, bins, palette.Oklab)
			if err != nil {
				return err
			}
			s.Range.Values = stringsToValues(colors)
		} else if def := numericDefault(aes); def != nil && bins > 1 {
			lo, hi := def[0].(float64), def[1].(float64)
			for i := 0; i < bins; i++ {
				s.Range.Values = append(s.Range.Values, lo+(hi-lo)*float64(i)/float64(bins-1))
			}
		} else {
			s.Range.Values = def
		}
	}
	return nil
}

func numericDefault(aes string) []interface{} {
	switch aes {
	case "size", "linewidth":
		return []interface{}{1.0, 6.0}
	case "opacity":
		return []interface{}{0.1, 1.0}
	}
	return nil
}

// resolvePalette expands a named palette for discrete and binned
// scales. Continuous scales keep the name, which the renderer emits
// as a scheme.
func resolvePalette(s *plot.Scale, name string, n, bins int) error {
	if s.Aesthetic == "shape" {
		shapes, ok := palette.LookupShapes(name)
		if !ok {
			return plot.Validationf("unknown shape palette '%s'", name).ForAesthetic(s.Aesthetic)
		}
		s.Range.Values = stringsToValues(palette.Expand(shapes, n))
		return nil
	}
	colors, ok := palette.Lookup(name)
	switch {
	case !ok:
		s.Range.Palette = name
	case s.Kind == plot.ScaleDiscrete:
		s.Range.Values = stringsToValues(palette.Expand(colors, n))
	case s.Kind == plot.ScaleBinned && bins > 0:
		out, err := palette.Interpolate(colors, bins, palette.Oklab)
		if err != nil {
			return err
		}
		s.Range.Values = stringsToValues(out)
	default:
		s.Range.Palette = name
	}
	return nil
}

func stringsToValues(xs []string) []interface{} {
	if xs == nil {
		return nil
	}
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func copyLabels(m map[string]plot.Label) map[string]plot.Label {
	if m == nil {
		return nil
	}
	out := make(map[string]plot.Label, len(m))
	for k, v := range m {
		out[k] = v
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
