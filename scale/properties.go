// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"sort"

	"github.com/aclements/ggvl/plot"
)

const (
	// DefaultExpand is the default multiplicative expansion of
	// numeric and temporal domains.
	DefaultExpand = 0.05

	// DefaultBreaks is the default number of breaks of a binned
	// scale.
	DefaultBreaks = 5
)

// AllowedProperties returns the SETTING keys accepted by a scale of
// kind k on aesthetic aes.
func AllowedProperties(k plot.ScaleKind, aes string) []string {
	pos := plot.IsPositional(aes)
	var out []string
	add := func(names ...string) { out = append(out, names...) }
	switch k {
	case plot.ScaleContinuous:
		if pos {
			add("expand")
		}
		add("oob", "reverse", "breaks", "pretty")
	case plot.ScaleBinned:
		if pos {
			add("expand")
		}
		add("oob", "reverse", "breaks", "pretty", "closed")
	case plot.ScaleDiscrete:
		add("reverse")
	case plot.ScaleDate, plot.ScaleDateTime, plot.ScaleTime:
		if pos {
			add("expand")
		}
		add("reverse", "breaks")
	}
	return out
}

// DefaultOOB returns the default out-of-bounds policy for aes:
// "keep" for positions and "censor" otherwise.
func DefaultOOB(aes string) string {
	if plot.IsPositional(aes) {
		return "keep"
	}
	return "censor"
}

func propertyDefault(k plot.ScaleKind, aes, name string) (interface{}, bool) {
	switch name {
	case "expand":
		return DefaultExpand, true
	case "oob":
		return DefaultOOB(aes), true
	case "reverse":
		return false, true
	case "pretty":
		return true, true
	case "closed":
		return "left", true
	case "breaks":
		if k == plot.ScaleBinned {
			return float64(DefaultBreaks), true
		}
	}
	return nil, false
}

// ResolveProperties validates props against the allow-list for
// (k, aes) and fills in defaults for allowed keys that are missing.
func ResolveProperties(k plot.ScaleKind, aes string, props map[string]interface{}) (map[string]interface{}, error) {
	allowed := AllowedProperties(k, aes)
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !contains(allowed, key) {
			if len(allowed) == 0 {
				return nil, plot.Validationf("%s scale does not support any SETTING properties", k).ForAesthetic(aes).ForProperty(key, nil)
			}
			return nil, plot.Validationf("%s scale does not support SETTING '%s'. Allowed: %s", k, key, join(allowed)).ForAesthetic(aes).ForProperty(key, allowed)
		}
		if err := checkProperty(k, aes, key, props[key]); err != nil {
			return nil, err
		}
	}

	out := make(map[string]interface{}, len(allowed))
	for key, v := range props {
		out[key] = normalizeNumber(v)
	}
	for _, name := range allowed {
		if _, ok := out[name]; ok {
			continue
		}
		if v, ok := propertyDefault(k, aes, name); ok {
			out[name] = v
		}
	}
	return out, nil
}

func checkProperty(k plot.ScaleKind, aes, key string, v interface{}) error {
	bad := func(want string) error {
		return plot.Validationf("SETTING '%s' of the %s scale for '%s' must be %s", key, k, aes, want).ForAesthetic(aes).ForProperty(key, nil)
	}
	switch key {
	case "expand":
		if _, _, ok := parseExpand(v); !ok {
			return bad("a number or an array of two numbers")
		}
	case "reverse", "pretty":
		if _, ok := v.(bool); !ok {
			return bad("a boolean")
		}
	case "closed":
		if s, ok := v.(string); !ok || (s != "left" && s != "right") {
			return bad("'left' or 'right'")
		}
	case "oob":
		if s, ok := v.(string); !ok || (s != "keep" && s != "censor" && s != "squish") {
			return bad("one of 'keep', 'censor', 'squish'")
		}
	case "breaks":
		if _, ok := toNumber(v); ok {
			break
		}
		if _, ok := numberArray(v); !ok {
			return bad("a number or an array of numbers")
		}
	}
	return nil
}

// parseExpand interprets an expand property: a number is a
// multiplicative factor; a pair is (mult, add).
func parseExpand(v interface{}) (mult, add float64, ok bool) {
	if m, ok := toNumber(v); ok {
		return m, 0, true
	}
	arr, ok := numberArray(v)
	if !ok || len(arr) != 2 {
		return 0, 0, false
	}
	return arr[0], arr[1], true
}

// Expand widens [min, max] by span*mult+add on both sides.
func Expand(min, max, mult, add float64) (float64, float64) {
	span := max - min
	return min - span*mult - add, max + span*mult + add
}

// expandFactors returns the expansion configured in props, or the
// default. Non-positional scales cannot set expand but still expand by
// the default.
func expandFactors(props map[string]interface{}) (mult, add float64) {
	if v, ok := props["expand"]; ok {
		if m, a, ok := parseExpand(v); ok {
			return m, a
		}
	}
	return DefaultExpand, 0
}

func toNumber(v interface{}) (float64, bool) {
	switch v.(type) {
	case bool, string, nil:
		return 0, false
	}
	return plot.ToFloat(v)
}

func normalizeNumber(v interface{}) interface{} {
	switch v.(type) {
	case int, int64, int32, float32, uint, uint64, uint32:
		f, _ := plot.ToFloat(v)
		return f
	}
	return v
}

func numberArray(v interface{}) ([]float64, bool) {
	var arr []interface{}
	switch v := v.(type) {
	case []interface{}:
		arr = v
	case []float64:
		return v, true
	default:
		return nil, false
	}
	out := make([]float64, len(arr))
	for i, x := range arr {
		f, ok := toNumber(x)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}
