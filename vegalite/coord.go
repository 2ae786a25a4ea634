// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"math"

	"github.com/aclements/ggvl/plot"
)

// project applies the plot's coordinate system to a layer spec.
func (c *compiler) project(spec obj) {
	proj := c.p.Projection
	if proj == nil {
		return
	}
	if clip, ok := proj.Properties["clip"].(bool); ok {
		if m, ok := spec["mark"].(obj); ok {
			m["clip"] = clip
		}
	}
	enc, _ := spec["encoding"].(obj)
	if enc == nil {
		return
	}
	switch proj.Coord {
	case plot.Flip:
		swap(enc, "x", "y")
		swap(enc, "x2", "y2")
		if m, ok := spec["mark"].(obj); ok && m["orient"] == "horizontal" {
			m["orient"] = "vertical"
		}
	case plot.Polar:
		c.polar(spec, enc)
	}
}

func swap(enc obj, a, b string) {
	va, oka := enc[a]
	vb, okb := enc[b]
	delete(enc, a)
	delete(enc, b)
	if oka {
		enc[b] = va
	}
	if okb {
		enc[a] = vb
	}
}

// polar maps one positional channel to theta and the other to radius
// or color. With theta on y, the x channel (usually categories) picks
// the slice color, giving pie charts.
func (c *compiler) polar(spec obj, enc obj) {
	props := c.p.Projection.Properties
	theta, _ := props["theta"].(string)
	if theta != "x" {
		theta = "y"
	}
	other := "x"
	if theta == "x" {
		other = "y"
	}

	if v, ok := enc[theta].(obj); ok {
		delete(v, "axis")
		start := 0.0
		if s, ok := toFloat(props["start"]); ok {
			start = s * math.Pi / 180
		}
		sc, _ := v["scale"].(obj)
		if sc == nil {
			sc = obj{}
		}
		sc["range"] = []interface{}{round(start), round(start + 2*math.Pi)}
		v["scale"] = sc
		if _, ok := v["stack"]; !ok {
			v["stack"] = true
		}
		enc["theta"] = v
	}
	if v, ok := enc[theta+"2"]; ok {
		enc["theta2"] = v
	}
	if v, ok := enc[other].(obj); ok {
		delete(v, "axis")
		if theta == "x" {
			enc["radius"] = v
			if v2, ok := enc[other+"2"]; ok {
				enc["radius2"] = v2
			}
		} else if _, ok := enc["color"]; !ok {
			delete(v, "scale")
			enc["color"] = v
		} else {
			enc["detail"] = append(asList(enc["detail"]), obj{"field": v["field"], "type": v["type"]})
		}
	}
	for _, ch := range []string{"x", "y", "x2", "y2"} {
		delete(enc, ch)
	}

	if m, ok := spec["mark"].(obj); ok {
		switch m["type"] {
		case "bar", "area", "rect":
			m["type"] = "arc"
			delete(m, "width")
			delete(m, "orient")
		case "point", "text", "line":
		default:
			c.r.warnf("polar coordinates do not support %v marks", m["type"])
		}
	}
}
