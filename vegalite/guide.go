// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/ggvl/palette"
	"github.com/aclements/ggvl/plot"
)

// guideDef returns the key ("axis" or "legend") and definition of the
// guide for scale s on aesthetic aes. A nil definition with a
// non-empty key disables the guide. An empty key leaves the guide to
// the renderer.
func (c *compiler) guideDef(s *plot.Scale, aes string) (string, interface{}) {
	key := "legend"
	if plot.IsPositional(aes) {
		key = "axis"
	}
	g := c.p.Guide(aes)
	if g != nil && g.Kind == plot.GuideNone {
		return key, nil
	}

	def := obj{}
	if s != nil {
		if key == "axis" {
			c.axisValues(def, s)
		} else {
			c.legendValues(def, s, aes)
		}
	}
	if g != nil {
		if key == "axis" {
			c.axisProps(def, g, aes)
		} else {
			c.legendProps(def, g, aes)
		}
	}
	if len(def) == 0 {
		return "", nil
	}
	return key, def
}

// axisValues sets the tick values and labels of an axis. Suppressed
// breaks get no tick.
func (c *compiler) axisValues(def obj, s *plot.Scale) {
	if len(s.Breaks) > 0 {
		var vals []interface{}
		for _, b := range s.Breaks {
			if l, ok := s.Label(breakKey(s, b)); ok && l.Suppress {
				continue
			}
			vals = append(vals, breakValue(s, b))
		}
		def["values"] = vals
	}
	if expr := labelExpr(s, ""); expr != "" {
		def["labelExpr"] = expr
	}
}

// legendValues sets the entries and labels of a legend.
func (c *compiler) legendValues(def obj, s *plot.Scale, aes string) {
	if s.Kind == plot.ScaleBinned {
		if c.gradient && palette.IsColorAesthetic(aes) {
			def["type"] = "gradient"
			vals := make([]interface{}, len(s.Breaks))
			for i, b := range s.Breaks {
				vals[i] = b
			}
			def["values"] = vals
			// The renderer gives the lowest terminal a null label.
			nullKey := ""
			if len(s.Breaks) > 0 {
				nullKey = breakKey(s, s.Breaks[0])
			}
			if expr := labelExpr(s, nullKey); expr != "" {
				def["labelExpr"] = expr
			}
			return
		}
		// One symbol per bin, keyed by its lower break.
		def["type"] = "symbol"
		if len(s.Breaks) > 1 {
			vals := make([]interface{}, len(s.Breaks)-1)
			for i, b := range s.Breaks[:len(s.Breaks)-1] {
				vals[i] = b
			}
			def["values"] = vals
		}
		if expr := binLabelExpr(s); expr != "" {
			def["labelExpr"] = expr
		}
		return
	}
	if s.Kind == plot.ScaleDiscrete && s.Bool("reverse") && len(s.Domain) > 0 {
		vals := make([]interface{}, len(s.Domain))
		for i, v := range s.Domain {
			vals[len(vals)-1-i] = jsonValue(v)
		}
		def["values"] = vals
	} else if len(s.Breaks) > 0 {
		vals := make([]interface{}, len(s.Breaks))
		for i, b := range s.Breaks {
			vals[i] = breakValue(s, b)
		}
		def["values"] = vals
	}
	if expr := labelExpr(s, ""); expr != "" {
		def["labelExpr"] = expr
	}
}

func (c *compiler) axisProps(def obj, g *plot.Guide, aes string) {
	for _, k := range sortedKeys(g.Properties) {
		v := g.Properties[k]
		switch k {
		case "title":
			def["title"] = v
		case "text_angle", "angle":
			def["labelAngle"] = v
		case "text_size":
			if f, ok := toFloat(v); ok {
				def["labelFontSize"] = round(f * pointsToPixels)
			}
		default:
			c.r.warnf("axis for '%s' ignores property '%s'", aes, k)
		}
	}
}

func (c *compiler) legendProps(def obj, g *plot.Guide, aes string) {
	if g.Kind == plot.GuideColorbar {
		def["type"] = "gradient"
	}
	for _, k := range sortedKeys(g.Properties) {
		v := g.Properties[k]
		switch k {
		case "title":
			def["title"] = v
		case "position":
			def["orient"] = v
		case "direction":
			def["direction"] = v
		case "title_position":
			anchors := map[string]string{"left": "start", "top": "start", "right": "end", "bottom": "end"}
			if s, ok := v.(string); ok && anchors[s] != "" {
				def["titleAnchor"] = anchors[s]
			} else {
				def["titleAnchor"] = v
			}
		default:
			c.r.warnf("legend for '%s' ignores property '%s'", aes, k)
		}
	}
}

// breakKey returns the formatted value of break b, which keys label
// overrides.
func breakKey(s *plot.Scale, b float64) string {
	if s.Kind.IsTemporal() {
		return plot.FormatTemporal(b, s.Kind)
	}
	return plot.FormatNumber(b)
}

// breakValue returns break b as a guide value.
func breakValue(s *plot.Scale, b float64) interface{} {
	if s.Kind.IsTemporal() {
		return dateTime(b, s.Kind)
	}
	return b
}

// labelMatch returns the expression a label override is matched
// against.
func labelMatch(s *plot.Scale) string {
	switch s.Kind {
	case plot.ScaleDate:
		return "utcFormat(datum.value, '%Y-%m-%d')"
	case plot.ScaleDateTime:
		return "utcFormat(datum.value, '%Y-%m-%dT%H:%M:%S')"
	case plot.ScaleTime:
		return "utcFormat(datum.value, '%H:%M:%S')"
	}
	return "datum.label"
}

// labelExpr returns a label expression applying s's label overrides,
// or "" if there are none. The override keyed nullKey, if any, is
// matched against a null label instead of the label text.
func labelExpr(s *plot.Scale, nullKey string) string {
	if len(s.Labels) == 0 {
		return ""
	}
	match := labelMatch(s)
	var cases []labelCase
	for _, k := range sortedKeys(s.Labels) {
		l := s.Labels[k]
		text := l.Text
		if l.Suppress {
			text = ""
		}
		cases = append(cases, labelCase{from: k, to: text, null: nullKey != "" && k == nullKey})
	}
	return conditional(match, cases)
}

type labelCase struct {
	from, to string

	// null matches a null label rather than from.
	null bool
}

// conditional builds a chained conditional expression mapping match
// through cases, falling back to datum.label.
func conditional(match string, cases []labelCase) string {
	if len(cases) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range cases {
		if c.null {
			fmt.Fprintf(&sb, "datum.label == null ? %s : ", jsString(c.to))
			continue
		}
		fmt.Fprintf(&sb, "%s === %s ? %s : ", match, jsString(c.from), jsString(c.to))
	}
	sb.WriteString("datum.label")
	return sb.String()
}

// binLabelExpr rewrites the renderer's threshold legend labels into
// bin ranges built from the break labels. The renderer labels each
// bin "lo – hi" except the last, which it labels "≥ lo". A
// suppressed outer break leaves its bin open-ended.
func binLabelExpr(s *plot.Scale) string {
	n := len(s.Breaks)
	if n < 2 {
		return ""
	}
	num := plot.FormatNumber
	label := func(b float64) string {
		if l, ok := s.Label(num(b)); ok && !l.Suppress {
			return l.Text
		}
		return num(b)
	}
	suppressed := func(b float64) bool {
		l, ok := s.Label(num(b))
		return ok && l.Suppress
	}
	below, above := "<", "≥"
	if s.Str("closed") == "right" {
		below, above = "≤", ">"
	}

	var cases []labelCase
	for i := 0; i+1 < n; i++ {
		lo, hi := s.Breaks[i], s.Breaks[i+1]
		last := i == n-2
		auto := num(lo) + " – " + num(hi)
		if last {
			auto = "≥ " + num(lo)
		}
		var want string
		switch {
		case i == 0 && suppressed(lo):
			want = below + " " + label(hi)
		case last && suppressed(hi):
			want = above + " " + label(lo)
		default:
			want = label(lo) + " – " + label(hi)
		}
		if want != auto {
			cases = append(cases, labelCase{from: auto, to: want})
		}
	}
	return conditional("datum.label", cases)
}

// jsString quotes s as a single-quoted expression string.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
