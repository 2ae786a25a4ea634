// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// Breaks returns about n break positions covering [min, max].
//
// If pretty is true, breaks are placed at round numbers and the
// outermost breaks may extend past min and max so every value in the
// range falls between two breaks. Otherwise breaks are evenly spaced
// (in transformed space for the log family) and start and end exactly
// at min and max.
//
// String and Bool transforms have no breaks.
func (k Kind) Breaks(min, max float64, n int, pretty bool) []float64 {
	if n <= 0 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if min > max {
		min, max = max, min
	}
	switch k {
	case String, Bool:
		return nil
	case Log10, Ln, Log2:
		return logBreaks(k, min, max, n, pretty)
	case Sqrt:
		if max < 0 {
			return nil
		}
		return linearBreaks(math.Max(min, 0), max, n, pretty, false)
	case Asinh, PseudoLog:
		if pretty {
			return symlogBreaks(min, max, n)
		}
		return linearBreaks(min, max, n, false, false)
	case Integer:
		return linearBreaks(min, max, n, pretty, true)
	}
	return linearBreaks(min, max, n, pretty, false)
}

// MinorBreaks returns n minor breaks between each pair of adjacent
// major breaks. Subdivision happens in transformed space, so minor
// breaks of a log scale are evenly spaced on the log axis. If clamp
// is non-nil, minor breaks outside [clamp[0], clamp[1]] are dropped.
func (k Kind) MinorBreaks(major []float64, n int, clamp *[2]float64) []float64 {
	if n <= 0 || len(major) < 2 || k == String || k == Bool {
		return nil
	}
	var out []float64
	for i := 0; i+1 < len(major); i++ {
		a, b := k.Forward(major[i]), k.Forward(major[i+1])
		for j := 1; j <= n; j++ {
			x := k.Inverse(a + (b-a)*float64(j)/float64(n+1))
			if clamp != nil && (x < clamp[0] || x > clamp[1]) {
				continue
			}
			out = append(out, x)
		}
	}
	return out
}

// tickStep returns the step of the 1-2-5 ladder at level l as a
// mantissa and a base-10 exponent.
func tickStep(l int) (m int64, e int) {
	e = l / 3
	r := l % 3
	if r < 0 {
		r += 3
		e--
	}
	return [...]int64{1, 2, 5}[r], e
}

// tickValue returns k*m*10^e, avoiding accumulated rounding error for
// negative exponents.
func tickValue(k, m int64, e int) float64 {
	if e < 0 {
		return float64(k*m) / math.Pow10(-e)
	}
	return float64(k*m) * math.Pow10(e)
}

// prettyRange returns the first and last multiples of the level l
// step that enclose [min, max].
func prettyRange(min, max float64, l int) (lo, hi int64) {
	m, e := tickStep(l)
	step := float64(m) * math.Pow10(e)
	lo = int64(math.Floor(min/step + 1e-9))
	hi = int64(math.Ceil(max/step - 1e-9))
	return
}

// prettyTicker places ticks on the 1-2-5 ladder over [min, max].
type prettyTicker struct {
	min, max float64
}

func (t prettyTicker) CountTicks(l int) int {
	lo, hi := prettyRange(t.min, t.max, l)
	return int(hi - lo + 1)
}

func (t prettyTicker) TicksAtLevel(l int) interface{} {
	return t.ticks(l)
}

func (t prettyTicker) ticks(l int) []float64 {
	m, e := tickStep(l)
	lo, hi := prettyRange(t.min, t.max, l)
	out := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, tickValue(i, m, e))
	}
	return out
}

func linearBreaks(min, max float64, n int, pretty, integer bool) []float64 {
	if min == max {
		if integer {
			return []float64{math.Round(min)}
		}
		return []float64{min}
	}
	if !pretty {
		out := vec.Linspace(min, max, n)
		if n > 1 {
			out[len(out)-1] = max
		}
		if integer {
			out = roundUnique(out)
		}
		return out
	}

	o := scale.TickOptions{Max: n + 1}
	if integer {
		o.MinLevel, o.MaxLevel = 0, 1000
	}
	tk := prettyTicker{min, max}
	guess := 3 * int(math.Floor(math.Log10((max-min)/float64(n))))
	l, ok := o.FindLevel(tk, guess)
	if !ok {
		return linearBreaks(min, max, n, false, integer)
	}
	out := tk.ticks(l)
	if integer {
		out = roundUnique(out)
	}
	return out
}

func logBreaks(k Kind, min, max float64, n int, pretty bool) []float64 {
	if max <= 0 {
		return nil
	}
	base := k.Base()
	if min <= 0 {
		// Start one decade below the largest value.
		min = max / base
	}
	if min == max || n == 1 {
		return []float64{min}
	}
	lmin, lmax := k.Forward(min), k.Forward(max)
	if !pretty {
		out := vec.Linspace(lmin, lmax, n)
		for i, x := range out {
			out[i] = k.Inverse(x)
		}
		out[0], out[len(out)-1] = min, max
		return out
	}
	lo, hi := math.Floor(lmin+1e-9), math.Ceil(lmax-1e-9)
	// Thin out decades until the count fits.
	stride := 1.0
	for (hi-lo)/stride+1 > float64(n+1) {
		stride++
	}
	lo = math.Floor(lo/stride) * stride
	var out []float64
	for p := lo; p <= hi+stride-1; p += stride {
		out = append(out, powInt(base, p))
		if p >= hi {
			break
		}
	}
	return out
}

// powInt returns base^p for integral p, exactly for base 10.
func powInt(base, p float64) float64 {
	if base == 10 {
		return math.Pow10(int(p))
	}
	return math.Pow(base, p)
}

func symlogBreaks(min, max float64, n int) []float64 {
	var out []float64
	if min < 0 {
		neg := coverPowers(-min)
		for i := len(neg) - 1; i >= 0; i-- {
			out = append(out, -neg[i])
		}
	}
	if min <= 0 && max >= 0 {
		out = append(out, 0)
	}
	if max > 0 {
		out = append(out, coverPowers(max)...)
	}
	// Keep zero and thin the remaining breaks.
	for len(out) > n+1 {
		var thin []float64
		for i, x := range out {
			if x == 0 || i%2 == 0 {
				thin = append(thin, x)
			}
		}
		if len(thin) == len(out) {
			break
		}
		out = thin
	}
	return out
}

// coverPowers returns 1, 10, 100, ... up to the first power >= v.
func coverPowers(v float64) []float64 {
	out := []float64{1}
	for e := 1; out[len(out)-1] < v; e++ {
		out = append(out, math.Pow10(e))
	}
	return out
}

func roundUnique(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		out = append(out, math.Round(x))
	}
	sort.Float64s(out)
	j := 0
	for i, x := range out {
		if i == 0 || x != out[j-1] {
			out[j] = x
			j++
		}
	}
	return out[:j]
}
