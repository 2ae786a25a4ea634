// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"errors"
	"image/color"
	"math"
)

// Space is a color space to interpolate in.
type Space int

const (
	// Oklab is a perceptually uniform space. Gradients through
	// Oklab avoid the muddy midpoints of RGB blending.
	Oklab Space = iota

	// LinearRGB blends linear-light RGB components.
	LinearRGB
)

// Interpolate returns count colors evenly spaced along the piecewise
// gradient through colors. The first and last results are exactly
// the first and last input colors.
func Interpolate(colors []string, count int, space Space) ([]string, error) {
	if len(colors) == 0 {
		return nil, errors.New("At least one color is required")
	}
	if count <= 0 {
		return []string{}, nil
	}
	stops := make([]vec3, len(colors))
	for i, s := range colors {
		c, err := parseColor(s)
		if err != nil {
			return nil, err
		}
		stops[i] = toLinear(c)
		if space == Oklab {
			stops[i] = linearToOklab(stops[i])
		}
	}

	fromSpace := func(v vec3) string {
		if space == Oklab {
			v = oklabToLinear(v)
		}
		return hexOf(fromLinear(v))
	}

	out := make([]string, count)
	if len(stops) == 1 || count == 1 {
		for i := range out {
			out[i] = fromSpace(stops[0])
		}
		return out, nil
	}
	segs := len(stops) - 1
	for i := range out {
		t := float64(i) / float64(count-1)
		pos := t * float64(segs)
		seg := int(math.Floor(pos))
		if seg > segs-1 {
			seg = segs - 1
		}
		out[i] = fromSpace(stops[seg].mix(stops[seg+1], pos-float64(seg)))
	}
	return out, nil
}

type vec3 [3]float64

func (a vec3) mix(b vec3, t float64) vec3 {
	return vec3{
		a[0]*(1-t) + b[0]*t,
		a[1]*(1-t) + b[1]*t,
		a[2]*(1-t) + b[2]*t,
	}
}

func sRGBToLinear(c uint8) float64 {
	x := float64(c) / 255
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

func linearToSRGB(x float64) uint8 {
	if x <= 0.0031308 {
		x *= 12.92
	} else {
		x = 1.055*math.Pow(x, 1/2.4) - 0.055
	}
	return clamp8(x * 255)
}

func toLinear(c color.RGBA) vec3 {
	return vec3{sRGBToLinear(c.R), sRGBToLinear(c.G), sRGBToLinear(c.B)}
}

func fromLinear(v vec3) color.RGBA {
	return color.RGBA{linearToSRGB(v[0]), linearToSRGB(v[1]), linearToSRGB(v[2]), 255}
}

// Oklab conversions from Björn Ottosson, "A perceptual color space
// for image processing" (2020).

func linearToOklab(c vec3) vec3 {
	l := math.Cbrt(0.4122214708*c[0] + 0.5363325363*c[1] + 0.0514459929*c[2])
	m := math.Cbrt(0.2119034982*c[0] + 0.6806995451*c[1] + 0.1073969566*c[2])
	s := math.Cbrt(0.0883024619*c[0] + 0.2817188376*c[1] + 0.6299787005*c[2])
	return vec3{
		0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

func oklabToLinear(c vec3) vec3 {
	l := c[0] + 0.3963377774*c[1] + 0.2158037573*c[2]
	m := c[0] - 0.1055613458*c[1] - 0.0638541728*c[2]
	s := c[0] - 0.0894841775*c[1] - 1.2914855480*c[2]
	l, m, s = l*l*l, m*m*m, s*s*s
	return vec3{
		+4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		-1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		-0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}
