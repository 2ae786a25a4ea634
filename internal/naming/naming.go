// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package naming generates the synthetic column and dataset names
// shared by the statistical transforms and the renderer.
//
// All synthetic names have the form __ggvl_<kind>__ so they cannot
// collide with ordinary query columns.
package naming

import (
	"fmt"
	"strings"
)

const (
	prefix = "__ggvl_"
	suffix = "__"

	// Source is the column tagging each merged data row with the
	// dataset it came from.
	Source = prefix + "source" + suffix

	// Component is the column tagging rows of composite geoms
	// (e.g., boxplots) with the sub-shape they belong to.
	Component = prefix + "component" + suffix
)

// LayerKey returns the default dataset key for layer i.
func LayerKey(i int) string {
	return fmt.Sprintf("%slayer_%d%s", prefix, i, suffix)
}

// StatColumn returns the column name for the statistic name
// produced by a statistical transform.
func StatColumn(name string) string {
	return prefix + "stat_" + name + suffix
}

// IsSynthetic reports whether name was produced by this package.
func IsSynthetic(name string) bool {
	return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, suffix) && len(name) > len(prefix)+len(suffix)
}

// StatName returns the statistic name of a StatColumn, or "" if
// column is not a stat column.
func StatName(column string) string {
	p := prefix + "stat_"
	if !strings.HasPrefix(column, p) || !strings.HasSuffix(column, suffix) || len(column) < len(p)+len(suffix) {
		return ""
	}
	return column[len(p) : len(column)-len(suffix)]
}
