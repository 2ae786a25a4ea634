// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// GridPoints is the number of points at which densities are
// evaluated.
const GridPoints = 512

// kernels maps kernel names to SQL over the scaled distance u.
var kernels = map[string]string{
	"gaussian":     "0.3989422804014327 * EXP(-0.5 * %[1]s * %[1]s)",
	"epanechnikov": "CASE WHEN ABS(%[1]s) <= 1 THEN 0.75 * (1 - %[1]s * %[1]s) ELSE 0 END",
	"rectangular":  "CASE WHEN ABS(%[1]s) <= 1 THEN 0.5 ELSE 0 END",
	"triangular":   "CASE WHEN ABS(%[1]s) <= 1 THEN 1 - ABS(%[1]s) ELSE 0 END",
	"biweight":     "CASE WHEN ABS(%[1]s) <= 1 THEN 0.9375 * (1 - %[1]s * %[1]s) * (1 - %[1]s * %[1]s) ELSE 0 END",
}

var kernelAliases = map[string]string{
	"normal":   "gaussian",
	"uniform":  "rectangular",
	"triangle": "triangular",
	"quartic":  "biweight",
}

// Kernels returns the accepted kernel names, sorted.
func Kernels() []string {
	var out []string
	for k := range kernels {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// density computes a kernel density estimate of the x aesthetic, or
// of y folded by x for violins.
func density(query string, schema plot.Schema, aes plot.Mappings, groupBy []string, param func(string) interface{}, d *Dialect, violin bool) (*Result, error) {
	kname, ok := param("kernel").(string)
	if !ok {
		return nil, plot.Validationf("density parameter 'kernel' must be a string, not '%v'", param("kernel")).ForProperty("kernel", Kernels())
	}
	kname = strings.ToLower(kname)
	if alias, ok := kernelAliases[kname]; ok {
		kname = alias
	}
	kernel, ok := kernels[kname]
	if !ok {
		return nil, plot.Validationf("unknown kernel '%s'. Allowed: %s", kname, strings.Join(Kernels(), ", ")).ForProperty("kernel", Kernels())
	}
	adjust, ok := toFloat(param("adjust"))
	if !ok || adjust <= 0 {
		return nil, plot.Validationf("density parameter 'adjust' must be a positive number, not '%v'", param("adjust")).ForProperty("adjust", nil)
	}
	var bandwidth float64
	if bw := param("bandwidth"); bw != nil {
		bandwidth, ok = toFloat(bw)
		if !ok || bandwidth <= 0 {
			return nil, plot.Validationf("density parameter 'bandwidth' must be a positive number, not '%v'", bw).ForProperty("bandwidth", nil)
		}
	}

	valueAes := "x"
	if violin {
		valueAes = "y"
	}
	valueCol, info, err := columnInfo(schema, aes, valueAes)
	if err != nil {
		return nil, err
	}
	if !info.Type.IsNumeric() {
		return nil, plot.Validationf("%s requires a continuous '%s' aesthetic, but column '%s' has type %s", geomName(violin), valueAes, valueCol, info.Type).ForAesthetic(valueAes)
	}

	var groups []string
	if violin {
		groupCol, _, err := columnInfo(schema, aes, "x")
		if err != nil {
			return nil, err
		}
		groups = append(groups, groupCol)
	}
	for _, g := range groupBy {
		if g != valueCol && !containsStr(groups, g) {
			groups = append(groups, g)
		}
	}
	weight := "1"
	var consumed []string
	if wcol, ok := aes.Column("weight"); ok {
		if _, ok := schema.Lookup(wcol); !ok {
			return nil, plot.Internalf("Missing column info for '%s' (weight)", wcol)
		}
		weight = d.Quote(wcol)
		consumed = append(consumed, "weight")
	}

	g := quoteAll(d, "", groups)
	gb := quoteAll(d, "b", groups)
	gp := quoteAll(d, "p", groups)
	v := d.Quote(valueCol)

	var bwExpr string
	if bandwidth > 0 {
		bwExpr = plot.FormatNumber(adjust * bandwidth)
	} else {
		// Scott's rule of thumb.
		sd := d.Stddev("__ggvl_v__")
		bwExpr = fmt.Sprintf("CASE WHEN COUNT(*) > 1 AND %[1]s > 0 THEN %[2]s * 1.06 * %[1]s * POWER(COUNT(*), -0.2) ELSE %[2]s END", sd, plot.FormatNumber(adjust))
	}
	groupBySQL := ""
	if len(g) > 0 {
		groupBySQL = " GROUP BY " + strings.Join(g, ", ")
	}
	last := GridPoints - 1
	u := "((p.__ggvl_x__ - c.__ggvl_v__) / p.__ggvl_bw__)"

	var sb strings.Builder
	fmt.Fprintf(&sb, "WITH RECURSIVE __ggvl_src__ AS (%s),\n", query)
	fmt.Fprintf(&sb, "__ggvl_clean__ AS (SELECT %s%s AS __ggvl_v__, %s AS __ggvl_w__ FROM __ggvl_src__ WHERE %s IS NOT NULL),\n",
		prefix(g), d.Real(v), weight, v)
	fmt.Fprintf(&sb, "__ggvl_bw__ AS (SELECT %sMIN(__ggvl_v__) AS __ggvl_lo__, MAX(__ggvl_v__) AS __ggvl_hi__, %s AS __ggvl_bw__ FROM __ggvl_clean__%s),\n",
		prefix(g), bwExpr, groupBySQL)
	fmt.Fprintf(&sb, "__ggvl_grid__(__ggvl_i__) AS (SELECT 0 UNION ALL SELECT __ggvl_i__ + 1 FROM __ggvl_grid__ WHERE __ggvl_i__ < %d),\n", last)
	fmt.Fprintf(&sb, "__ggvl_points__ AS (SELECT %sb.__ggvl_bw__, b.__ggvl_lo__ - 3 * b.__ggvl_bw__ + (b.__ggvl_hi__ - b.__ggvl_lo__ + 6 * b.__ggvl_bw__) * t.__ggvl_i__ / %d.0 AS __ggvl_x__ FROM __ggvl_bw__ b CROSS JOIN __ggvl_grid__ t)\n",
		prefix(gb), last)
	fmt.Fprintf(&sb, "SELECT %sp.__ggvl_x__ AS %s, SUM(c.__ggvl_w__ * (%s)) / (SUM(c.__ggvl_w__) * p.__ggvl_bw__) AS %s\n",
		prefix(gp), naming.StatColumn("value"), fmt.Sprintf(kernel, u), naming.StatColumn("density"))
	fmt.Fprintf(&sb, "FROM __ggvl_points__ p JOIN __ggvl_clean__ c ON %s\n", joinOn(d, "p", "c", groups))
	fmt.Fprintf(&sb, "GROUP BY %sp.__ggvl_x__, p.__ggvl_bw__\n", prefix(gp))
	fmt.Fprintf(&sb, "ORDER BY %sp.__ggvl_x__", prefix(gp))

	r := &Result{
		Query:       sb.String(),
		StatColumns: []string{"value", "density"},
		Consumed:    consumed,
	}
	if violin {
		r.Mappings = map[string]string{"y": "value", "width": "density"}
	} else {
		r.Mappings = map[string]string{"x": "value", "y": "density"}
	}
	return r, nil
}

func geomName(violin bool) string {
	if violin {
		return "violin"
	}
	return "density"
}

func containsStr(xs []string, x string) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}
