// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("VIRIDIS")
	require.True(t, ok)
	assert.Equal(t, Viridis, p)

	p, ok = Lookup("tableau")
	require.True(t, ok)
	assert.Equal(t, Tableau10, p)

	_, ok = Lookup("unknown")
	assert.False(t, ok)
}

func TestLookupBrewer(t *testing.T) {
	p, ok := Lookup("set1")
	require.True(t, ok)
	assert.Len(t, p, 9)
	assert.Equal(t, "#e41a1c", p[0])

	p, ok = Lookup("Blues")
	require.True(t, ok)
	assert.Equal(t, "#f7fbff", p[0])
	assert.Equal(t, "#08306b", p[len(p)-1])

	p, ok = Lookup("rdbu")
	require.True(t, ok)
	assert.Len(t, p, 11)
	assert.Contains(t, Names(), "rdbu")
}

func TestShapes(t *testing.T) {
	s, ok := LookupShapes("default")
	require.True(t, ok)
	assert.Equal(t, "circle", s[0])
	_, ok = LookupShapes("nope")
	assert.False(t, ok)

	_, ok = ShapePath("circle")
	assert.False(t, ok)
	path, ok := ShapePath("Star")
	assert.True(t, ok)
	assert.Contains(t, path, "M0,-1")
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "a", "b"}, Expand([]string{"a", "b", "c"}, 5))
	assert.Equal(t, []string{"a"}, Expand([]string{"a", "b", "c"}, 1))
	assert.Nil(t, Expand(nil, 3))
	assert.Nil(t, Expand([]string{"a"}, 0))
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"red":                     "#ff0000",
		"SteelBlue":               "#4682b4",
		"#F00":                    "#ff0000",
		"#ff000080":               "#ff0000",
		"#123456":                 "#123456",
		"rgb(0, 128, 255)":        "#0080ff",
		"rgba(255,0,0,0.5)":       "#ff0000",
		"rgb(100%, 0%, 0%)":       "#ff0000",
		"hsl(120, 100%, 50%)":     "#00ff00",
		"hsl(0deg 0% 100%)":       "#ffffff",
		"hsla(240, 100%, 50%, 1)": "#0000ff",
	} {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"notacolor", "#12", "#gggggg", "rgb(1,2)", "cmyk(1,2,3,4)"} {
		_, err := Normalize(in)
		assert.EqualError(t, err, "Invalid color '"+in+"'")
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	pairs := [][2]string{{"red", "blue"}, {"#440154", "#fde725"}, {"white", "black"}, {"#123", "rgb(200, 10, 30)"}}
	for _, space := range []Space{Oklab, LinearRGB} {
		for _, p := range pairs {
			a, _ := Normalize(p[0])
			b, _ := Normalize(p[1])
			for _, n := range []int{2, 3, 7} {
				got, err := Interpolate(p[:], n, space)
				require.NoError(t, err)
				require.Len(t, got, n)
				assert.Equal(t, a, got[0], "%v %d", p, n)
				assert.Equal(t, b, got[n-1], "%v %d", p, n)
			}
		}
	}
}

func TestInterpolateEdges(t *testing.T) {
	got, err := Interpolate([]string{"red", "blue"}, 1, Oklab)
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000"}, got)

	got, err = Interpolate([]string{"red", "blue"}, 0, Oklab)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Interpolate([]string{"#abc"}, 3, LinearRGB)
	require.NoError(t, err)
	assert.Equal(t, []string{"#aabbcc", "#aabbcc", "#aabbcc"}, got)

	_, err = Interpolate(nil, 3, Oklab)
	assert.EqualError(t, err, "At least one color is required")

	_, err = Interpolate([]string{"red", "bogus"}, 3, Oklab)
	assert.EqualError(t, err, "Invalid color 'bogus'")
}

func TestInterpolateMidpoints(t *testing.T) {
	got, err := Interpolate([]string{"black", "white"}, 3, LinearRGB)
	require.NoError(t, err)
	assert.Equal(t, "#bcbcbc", got[1])

	got, err = Interpolate([]string{"black", "white"}, 3, Oklab)
	require.NoError(t, err)
	assert.Equal(t, "#636363", got[1])

	// Three stops: the middle output lands exactly on the middle stop.
	got, err = Interpolate([]string{"red", "lime", "blue"}, 5, Oklab)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", got[2])
}

func TestStrokeDash(t *testing.T) {
	d, ok := StrokeDash("dashed")
	require.True(t, ok)
	assert.Equal(t, []float64{4, 4}, d)
	d, ok = StrokeDash("1343")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 3, 4, 3}, d)
	_, ok = StrokeDash("zz")
	assert.False(t, ok)
	_, ok = StrokeDash("123")
	assert.False(t, ok)
}

func TestIsColorAesthetic(t *testing.T) {
	for _, a := range []string{"color", "colour", "col", "fill", "stroke"} {
		assert.True(t, IsColorAesthetic(a), a)
	}
	assert.False(t, IsColorAesthetic("size"))
}
