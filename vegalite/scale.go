// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vegalite

import (
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/aclements/ggvl/plot"
	"github.com/aclements/ggvl/transform"
)

// scaleDef returns the Vega-Lite scale for s on aesthetic aes. It
// returns a nil scale and true for scales that must be disabled, and
// false if the channel should use the renderer's defaults.
func (c *compiler) scaleDef(s *plot.Scale, aes, mark string) (interface{}, bool) {
	if s.Kind == plot.ScaleIdentity {
		return nil, true
	}
	sc := obj{}
	pos := plot.IsPositional(aes)
	switch s.Kind {
	case plot.ScaleContinuous:
		c.transformType(sc, s.Transform)
		if d := numericDomain(s.Domain); d != nil {
			sc["domain"] = d
			if pos {
				sc["nice"] = false
				sc["zero"] = false
			}
		}
		if s.Str("oob") == "squish" {
			sc["clamp"] = true
		}
	case plot.ScaleBinned:
		if pos {
			c.transformType(sc, s.Transform)
			if d := numericDomain(s.Domain); d != nil {
				sc["domain"] = d
				sc["nice"] = false
				sc["zero"] = false
			}
			break
		}
		// Values are bin centers, so the inner breaks separate
		// the bins.
		sc["type"] = "threshold"
		inner := []float64{}
		if len(s.Breaks) > 2 {
			inner = s.Breaks[1 : len(s.Breaks)-1]
		}
		sc["domain"] = inner
	case plot.ScaleDiscrete:
		if s.Domain != nil {
			d := make([]interface{}, len(s.Domain))
			for i, v := range s.Domain {
				d[i] = jsonValue(v)
			}
			sc["domain"] = d
		}
	case plot.ScaleDate, plot.ScaleDateTime, plot.ScaleTime:
		sc["type"] = "utc"
		if len(s.Domain) == 2 {
			lo, ok1 := temporalMillis(s.Domain[0])
			hi, ok2 := temporalMillis(s.Domain[1])
			if ok1 && ok2 {
				sc["domain"] = []interface{}{dateTime(lo, s.Kind), dateTime(hi, s.Kind)}
				if pos {
					sc["nice"] = false
				}
			}
		}
	}

	switch {
	case s.Range.Palette != "":
		sc["scheme"] = strings.ToLower(s.Range.Palette)
	case s.Range.Values != nil:
		r := make([]interface{}, len(s.Range.Values))
		for i, v := range s.Range.Values {
			r[i] = convertValue(aes, v, mark)
		}
		sc["range"] = r
	}
	if s.Bool("reverse") {
		sc["reverse"] = true
	}
	if len(sc) == 0 {
		return nil, false
	}
	return sc, true
}

// transformType sets the scale type implementing transform k.
func (c *compiler) transformType(sc obj, k transform.Kind) {
	switch k {
	case transform.Log10:
		sc["type"] = "log"
	case transform.Ln:
		sc["type"] = "log"
		sc["base"] = math.E
	case transform.Log2:
		sc["type"] = "log"
		sc["base"] = 2
	case transform.Sqrt:
		sc["type"] = "sqrt"
	case transform.Square:
		sc["type"] = "pow"
		sc["exponent"] = 2
	case transform.Asinh, transform.PseudoLog:
		sc["type"] = "symlog"
	case transform.Exp10, transform.Exp2, transform.Exp:
		c.r.warnf("%s transform has no Vega-Lite scale; using a linear scale", k)
		sc["type"] = "linear"
	}
}

func numericDomain(d []interface{}) []interface{} {
	if len(d) == 0 {
		return nil
	}
	out := make([]interface{}, len(d))
	for i, v := range d {
		f, ok := toFloat(v)
		if !ok {
			return nil
		}
		out[i] = f
	}
	return out
}

// temporalMillis converts a temporal domain bound to milliseconds
// since the epoch.
func temporalMillis(v interface{}) (float64, bool) {
	if f, ok := plot.ToFloat(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		return float64(t.Sub(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)).Milliseconds()), true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return 0, false
	}
	return float64(t.UnixMilli()), true
}
