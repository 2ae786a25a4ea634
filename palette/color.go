// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Normalize parses a CSS color and returns it as a lower-case
// "#rrggbb" string. It accepts hex forms (#rgb, #rgba, #rrggbb,
// #rrggbbaa), rgb(), rgba(), hsl(), hsla() and CSS color names.
// Alpha is discarded.
func Normalize(s string) (string, error) {
	c, err := parseColor(s)
	if err != nil {
		return "", err
	}
	return hexOf(c), nil
}

type badColor string

func (e badColor) Error() string {
	return fmt.Sprintf("Invalid color '%s'", string(e))
}

func parseColor(s string) (color.RGBA, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(t, "#") {
		if c, ok := parseHex(t[1:]); ok {
			return c, nil
		}
		return color.RGBA{}, badColor(s)
	}
	if i := strings.IndexByte(t, '('); i > 0 && strings.HasSuffix(t, ")") {
		fn, args := t[:i], splitArgs(t[i+1:len(t)-1])
		var c color.RGBA
		var ok bool
		switch fn {
		case "rgb", "rgba":
			c, ok = parseRGB(args)
		case "hsl", "hsla":
			c, ok = parseHSL(args)
		}
		if ok {
			return c, nil
		}
		return color.RGBA{}, badColor(s)
	}
	if c, ok := colornames.Map[t]; ok {
		return c, nil
	}
	return color.RGBA{}, badColor(s)
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
		h = h[:6]
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
}

// splitArgs splits CSS function arguments separated by commas,
// whitespace, or a slash before alpha.
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
}

func parseRGB(args []string) (color.RGBA, bool) {
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		a := args[i]
		var v float64
		var err error
		if strings.HasSuffix(a, "%") {
			v, err = strconv.ParseFloat(a[:len(a)-1], 64)
			v = v * 255 / 100
		} else {
			v, err = strconv.ParseFloat(a, 64)
		}
		if err != nil {
			return color.RGBA{}, false
		}
		ch[i] = clamp8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], 255}, true
}

func parseHSL(args []string) (color.RGBA, bool) {
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return color.RGBA{}, false
	}
	pct := func(a string) (float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		return math.Max(0, math.Min(100, v)) / 100, err == nil
	}
	s, ok1 := pct(args[1])
	l, ok2 := pct(args[2])
	if !ok1 || !ok2 {
		return color.RGBA{}, false
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// CSS Color 4 hsl-to-rgb.
	f := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		a := s * math.Min(l, 1-l)
		return l - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1))
	}
	return color.RGBA{clamp8(f(0) * 255), clamp8(f(8) * 255), clamp8(f(4) * 255), 255}, true
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
