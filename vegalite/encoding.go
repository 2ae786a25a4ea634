// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"math"
	"strconv"

	"github.com/aclements/ggvl/palette"
	"github.com/aclements/ggvl/plot"
)

const (
	// pointsToPixels converts typographic points to CSS pixels.
	pointsToPixels = 96.0 / 72.0
)

// channelOf returns the encoding channel of aesthetic aes in layer l,
// or "" if aes has no channel.
func channelOf(l *plot.Layer, aes string) string {
	switch aes {
	case "x", "y":
		return aes
	case "xmin", "ymin":
		// The lower bound takes the main channel unless the
		// layer maps it separately.
		p := plot.Primary(aes)
		if _, ok := l.Mappings[p]; ok {
			return ""
		}
		return p
	case "xmax", "xend":
		return "x2"
	case "ymax", "yend":
		return "y2"
	case "color", "colour", "col":
		return "color"
	case "fill", "stroke", "size", "shape", "opacity", "angle":
		return aes
	case "fontsize":
		return "size"
	case "linetype":
		return "strokeDash"
	case "linewidth":
		return "strokeWidth"
	case "label":
		return "text"
	}
	return ""
}

// fieldType returns the Vega-Lite measurement type of a field with
// scale s (possibly nil) over column col. Identity scales and
// unscaled fields take the type of the column; string columns holding
// only numbers are quantitative.
func fieldType(s *plot.Scale, col interface{}) string {
	if s != nil {
		switch s.Kind {
		case plot.ScaleContinuous, plot.ScaleBinned:
			return "quantitative"
		case plot.ScaleDate, plot.ScaleDateTime, plot.ScaleTime:
			return "temporal"
		case plot.ScaleDiscrete:
			return "nominal"
		}
	}
	switch t := plot.TypeOf(col); {
	case t.IsNumeric():
		return "quantitative"
	case t.IsTemporal():
		return "temporal"
	case t == plot.TypeString && numericValues(plot.Values(col)):
		return "quantitative"
	}
	return "nominal"
}

// numericValues reports whether every value in vs is a number or a
// string holding one.
func numericValues(vs []interface{}) bool {
	if len(vs) == 0 {
		return false
	}
	for _, v := range vs {
		switch v := v.(type) {
		case string:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return false
			}
		case bool, nil:
			return false
		default:
			if _, ok := plot.ToFloat(v); !ok {
				return false
			}
		}
	}
	return true
}

// convertValue converts a literal or range value of aes to the
// units of its Vega-Lite channel. mark is the target mark type.
func convertValue(aes string, v interface{}, mark string) interface{} {
	switch plot.Canonical(aes) {
	case "color", "fill", "stroke":
		if s, ok := v.(string); ok {
			if c, err := palette.Normalize(s); err == nil {
				return c
			}
		}
	case "size":
		f, ok := toFloat(v)
		if !ok {
			break
		}
		if mark == "text" {
			return round(f * pointsToPixels)
		}
		// Radius in points to area in square pixels.
		r := f * pointsToPixels
		return round(r * r * math.Pi)
	case "fontsize":
		if f, ok := toFloat(v); ok {
			return round(f * pointsToPixels)
		}
	case "linewidth":
		if f, ok := toFloat(v); ok {
			return round(f * pointsToPixels)
		}
	case "linetype":
		if s, ok := v.(string); ok {
			if dash, ok := palette.StrokeDash(s); ok {
				return dash
			}
		}
	case "shape":
		if s, ok := v.(string); ok {
			if path, ok := palette.ShapePath(s); ok {
				return path
			}
		}
	}
	return v
}

// round rounds x to 6 decimal places so output does not depend on
// floating-point noise.
func round(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}

func toFloat(v interface{}) (float64, bool) {
	switch v.(type) {
	case bool, string, nil:
		return 0, false
	}
	return plot.ToFloat(v)
}
