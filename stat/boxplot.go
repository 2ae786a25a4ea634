// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"strings"

	"github.com/aclements/ggvl/internal/naming"
	"github.com/aclements/ggvl/plot"
)

// BoxplotTypes are the values of the boxplot "type" statistic, in
// output order.
var BoxplotTypes = []string{"lower", "q1", "median", "q3", "upper", "outlier"}

// Orientation returns the group and value aesthetics of a boxplot.
// An explicit orientation names the group axis. Otherwise the
// discrete axis is the group axis, and x is when both or neither are
// discrete.
func Orientation(schema plot.Schema, aes plot.Mappings, explicit interface{}) (group, value string, err error) {
	if explicit != nil {
		switch explicit {
		case "x", "vertical":
			return "x", "y", nil
		case "y", "horizontal":
			return "y", "x", nil
		}
		return "", "", plot.Validationf("boxplot orientation must be 'x' or 'y', not '%v'", explicit).ForProperty("orientation", []string{"x", "y"})
	}
	discrete := func(name string) (bool, error) {
		_, info, err := columnInfo(schema, aes, name)
		if err != nil {
			return false, err
		}
		return info.Discrete, nil
	}
	xd, err := discrete("x")
	if err != nil {
		return "", "", err
	}
	yd, err := discrete("y")
	if err != nil {
		return "", "", err
	}
	if yd && !xd {
		return "y", "x", nil
	}
	return "x", "y", nil
}

func boxplot(query string, schema plot.Schema, aes plot.Mappings, groupBy []string, param func(string) interface{}, d *Dialect) (*Result, error) {
	coef, ok := toFloat(param("coef"))
	if !ok {
		return nil, plot.Validationf("boxplot parameter 'coef' must be a number, not '%v'", param("coef")).ForProperty("coef", nil)
	}
	outliers, ok := param("outliers").(bool)
	if !ok {
		return nil, plot.Validationf("boxplot parameter 'outliers' must be a boolean, not '%v'", param("outliers")).ForProperty("outliers", nil)
	}
	groupAes, valueAes, err := Orientation(schema, aes, param("orientation"))
	if err != nil {
		return nil, err
	}
	groupCol, _, err := columnInfo(schema, aes, groupAes)
	if err != nil {
		return nil, err
	}
	valueCol, _, err := columnInfo(schema, aes, valueAes)
	if err != nil {
		return nil, err
	}

	groups := []string{groupCol}
	for _, g := range groupBy {
		if g != groupCol && g != valueCol {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, plot.Internalf("boxplot has an empty grouping set")
	}

	typeCol := naming.StatColumn("type")
	valCol := naming.StatColumn("value")
	g := quoteAll(d, "", groups)
	gr := quoteAll(d, "r", groups)
	partition := strings.Join(g, ", ")
	v := d.Quote(valueCol)

	var sb strings.Builder
	fmt.Fprintf(&sb, "WITH __ggvl_src__ AS (%s),\n", query)
	fmt.Fprintf(&sb, "__ggvl_ranked__ AS (SELECT %s%s AS __ggvl_v__, ROW_NUMBER() OVER (PARTITION BY %s ORDER BY %s) AS __ggvl_rn__, COUNT(*) OVER (PARTITION BY %s) AS __ggvl_n__ FROM __ggvl_src__ WHERE %s IS NOT NULL),\n",
		prefix(g), v, partition, v, partition, v)
	fmt.Fprintf(&sb, "__ggvl_summary__ AS (SELECT %sMIN(__ggvl_v__) AS __ggvl_min__, MAX(__ggvl_v__) AS __ggvl_max__, %s AS __ggvl_q1__, %s AS __ggvl_median__, %s AS __ggvl_q3__ FROM __ggvl_ranked__ GROUP BY %s),\n",
		prefix(g), quantile(d, 0.25), quantile(d, 0.5), quantile(d, 0.75), partition)
	iqr := "(__ggvl_q3__ - __ggvl_q1__)"
	c := plot.FormatNumber(coef)
	fmt.Fprintf(&sb, "__ggvl_stats__ AS (SELECT %s__ggvl_q1__, __ggvl_median__, __ggvl_q3__, "+
		"CASE WHEN __ggvl_q3__ + %[2]s * %[3]s < __ggvl_max__ THEN __ggvl_q3__ + %[2]s * %[3]s ELSE __ggvl_max__ END AS __ggvl_upper__, "+
		"CASE WHEN __ggvl_q1__ - %[2]s * %[3]s > __ggvl_min__ THEN __ggvl_q1__ - %[2]s * %[3]s ELSE __ggvl_min__ END AS __ggvl_lower__ FROM __ggvl_summary__)\n",
		prefix(g), c, iqr)

	var parts []string
	for _, typ := range BoxplotTypes[:5] {
		parts = append(parts, fmt.Sprintf("SELECT %s'%s' AS %s, __ggvl_%s__ AS %s FROM __ggvl_stats__", prefix(g), typ, typeCol, typ, valCol))
	}
	if outliers {
		parts = append(parts, fmt.Sprintf("SELECT %s'outlier' AS %s, r.__ggvl_v__ AS %s FROM __ggvl_ranked__ r JOIN __ggvl_stats__ s ON %s WHERE r.__ggvl_v__ < s.__ggvl_lower__ OR r.__ggvl_v__ > s.__ggvl_upper__",
			prefix(gr), typeCol, valCol, joinOn(d, "r", "s", groups)))
	}
	sb.WriteString(strings.Join(parts, "\nUNION ALL "))

	return &Result{
		Query:       sb.String(),
		StatColumns: []string{"type", "value"},
		Mappings:    map[string]string{valueAes: "value"},
	}, nil
}

// quantile returns an aggregate over __ggvl_ranked__ computing the p
// quantile with linear interpolation between order statistics
// (Hyndman and Fan type 7).
func quantile(d *Dialect, p float64) string {
	h := fmt.Sprintf("((__ggvl_n__ - 1) * %s + 1)", plot.FormatNumber(p))
	lo := d.Floor(h)
	frac := fmt.Sprintf("(%s - %s)", h, lo)
	return fmt.Sprintf("SUM(CASE WHEN __ggvl_rn__ = %[1]s THEN __ggvl_v__ * (1 - %[2]s) WHEN __ggvl_rn__ = %[1]s + 1 THEN __ggvl_v__ * %[2]s ELSE 0 END)", lo, frac)
}
