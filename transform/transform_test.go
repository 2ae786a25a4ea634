// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"
	"testing"

	"github.com/aclements/go-moremath/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for name, want := range map[string]Kind{
		"identity":   Identity,
		"LINEAR":     Identity,
		"log":        Log10,
		"log10":      Log10,
		"ln":         Ln,
		"log2":       Log2,
		"sqrt":       Sqrt,
		"pow2":       Square,
		"pseudo_log": PseudoLog,
		"datetime":   DateTime,
		"int":        Integer,
	} {
		got, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := Parse("bogus")
	assert.Error(t, err)
	assert.Equal(t, "pseudo_log", PseudoLog.String())
}

func TestInDomain(t *testing.T) {
	assert.False(t, Log10.InDomain(0))
	assert.True(t, Log10.InDomain(1))
	assert.False(t, Sqrt.InDomain(-1))
	assert.True(t, Sqrt.InDomain(0))
	assert.False(t, Identity.InDomain(math.NaN()))
	assert.False(t, Identity.InDomain(math.Inf(1)))
	assert.True(t, Identity.InDomain(-1e300))
}

func TestRoundTrip(t *testing.T) {
	for _, k := range []Kind{Identity, Log10, Ln, Log2, Sqrt, Square, Exp10, Exp2, Exp, Asinh, PseudoLog} {
		for _, x := range []float64{0.5, 1, 3, 40} {
			assert.InDelta(t, x, k.Inverse(k.Forward(x)), 1e-9, "%v(%v)", k, x)
		}
	}
}

func TestPrettyBreaks(t *testing.T) {
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, Identity.Breaks(0, 100, 5, true))
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, Identity.Breaks(1, 10, 5, true))
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, Identity.Breaks(0.1, 0.5, 4, true))
	// Arguments may arrive in either order.
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, Identity.Breaks(100, 0, 5, true))
	assert.Equal(t, []float64{7}, Identity.Breaks(7, 7, 5, true))
}

func TestPrettyBreaksCover(t *testing.T) {
	for _, r := range [][2]float64{{0.55, 10.45}, {-3, 17}, {1e3, 1e6}, {-0.02, 0.013}} {
		b := Identity.Breaks(r[0], r[1], 5, true)
		require.NotEmpty(t, b)
		assert.LessOrEqual(t, b[0], r[0], "%v", r)
		assert.GreaterOrEqual(t, b[len(b)-1], r[1], "%v", r)
		assert.LessOrEqual(t, len(b), 6, "%v", r)
	}
}

func TestPrettyTicker(t *testing.T) {
	var tk scale.Ticker = prettyTicker{0.55, 10.45}
	for l := -3; l <= 6; l++ {
		ticks := tk.TicksAtLevel(l).([]float64)
		assert.Equal(t, len(ticks), tk.CountTicks(l), "level %d", l)
		assert.LessOrEqual(t, ticks[0], 0.55, "level %d", l)
		assert.GreaterOrEqual(t, ticks[len(ticks)-1], 10.45, "level %d", l)
	}
	// Levels 0, 1 and 2 step by 1, 2 and 5.
	assert.Equal(t, []float64{0, 5, 10, 15}, tk.TicksAtLevel(2))

	o := scale.TickOptions{Max: 6}
	l, ok := o.FindLevel(tk, 0)
	require.True(t, ok)
	assert.Equal(t, 2, l)
}

func TestLinearBreaks(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10}, Identity.Breaks(0, 10, 3, false))
	assert.Nil(t, Identity.Breaks(0, 10, 0, false))
	assert.Nil(t, Identity.Breaks(math.NaN(), 10, 5, false))
}

func TestLogBreaks(t *testing.T) {
	assert.Equal(t, []float64{1, 10, 100, 1000}, Log10.Breaks(1, 1000, 5, true))
	assert.Equal(t, []float64{1, 1e4, 1e8, 1e12}, Log10.Breaks(1, 1e10, 3, true))
	assert.Nil(t, Log10.Breaks(-5, -1, 5, true))

	b := Log10.Breaks(1, 100, 3, false)
	require.Len(t, b, 3)
	assert.Equal(t, 1.0, b[0])
	assert.InDelta(t, 10, b[1], 1e-9)
	assert.Equal(t, 100.0, b[2])
}

func TestSqrtBreaks(t *testing.T) {
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, Sqrt.Breaks(-5, 100, 5, true))
}

func TestSymlogBreaks(t *testing.T) {
	assert.Equal(t, []float64{-100, -10, -1, 0, 1, 10, 100, 1000}, Asinh.Breaks(-50, 500, 10, true))
	b := PseudoLog.Breaks(-1e6, 1e6, 4, true)
	assert.Contains(t, b, 0.0)
	assert.LessOrEqual(t, len(b), 5)
}

func TestIntegerBreaks(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2, 3}, Integer.Breaks(0, 3, 10, true))
	assert.Equal(t, []float64{0, 1, 2}, Integer.Breaks(0, 2, 6, false))
}

func TestDiscreteBreaks(t *testing.T) {
	assert.Nil(t, String.Breaks(0, 10, 5, true))
	assert.Nil(t, Bool.Breaks(0, 1, 5, true))
	assert.Nil(t, Bool.MinorBreaks([]float64{0, 1}, 1, nil))
}

func TestMinorBreaks(t *testing.T) {
	assert.Equal(t, []float64{5, 15}, Identity.MinorBreaks([]float64{0, 10, 20}, 1, nil))
	assert.Equal(t, []float64{5}, Identity.MinorBreaks([]float64{0, 10, 20}, 1, &[2]float64{0, 12}))
	assert.Equal(t, []float64{10}, Log10.MinorBreaks([]float64{1, 100}, 1, nil))
	assert.Nil(t, Identity.MinorBreaks([]float64{1}, 1, nil))
}

func TestFlags(t *testing.T) {
	assert.True(t, Date.IsTemporal())
	assert.True(t, Time.IsTemporal())
	assert.False(t, Integer.IsTemporal())
	assert.True(t, String.IsDiscrete())
	assert.False(t, Integer.IsDiscrete())
	assert.True(t, Log2.IsLog())
	assert.Equal(t, 2.0, Log2.Base())
}
