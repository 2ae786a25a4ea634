// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"strings"

	"github.com/aclements/ggvl/plot"
)

// BinSQL returns a SQL expression mapping column to the center of
// its bin. column is inserted verbatim and must already be quoted if
// necessary.
//
// With closed "left", bins are [lower, upper) except the last, which
// is [lower, upper]. With closed "right", bins are (lower, upper]
// except the first, which is [lower, upper]. Values outside every bin
// map to NULL. BinSQL returns "" if there are fewer than two breaks.
func BinSQL(column string, breaks []float64, closed string) string {
	if len(breaks) < 2 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("(CASE")
	n := len(breaks) - 1
	for i := 0; i < n; i++ {
		lo, hi := breaks[i], breaks[i+1]
		loOp, hiOp := binOps(i, n, closed)
		fmt.Fprintf(&sb, " WHEN %s %s %s AND %s %s %s THEN %s",
			column, loOp, plot.FormatNumber(lo),
			column, hiOp, plot.FormatNumber(hi),
			plot.FormatNumber((lo+hi)/2))
	}
	sb.WriteString(" ELSE NULL END)")
	return sb.String()
}

// binOps returns the lower and upper comparison operators for bin i
// of n.
func binOps(i, n int, closed string) (lo, hi string) {
	if closed == "right" {
		if i == 0 {
			return ">=", "<="
		}
		return ">", "<="
	}
	if i == n-1 {
		return ">=", "<="
	}
	return ">=", "<"
}

// FindBin returns the bin of breaks containing x under the same
// boundary rules as BinSQL.
func FindBin(x float64, breaks []float64, closed string) (lo, hi float64, ok bool) {
	n := len(breaks) - 1
	for i := 0; i < n; i++ {
		lo, hi = breaks[i], breaks[i+1]
		loOp, hiOp := binOps(i, n, closed)
		inLo := x >= lo
		if loOp == ">" {
			inLo = x > lo
		}
		inHi := x < hi
		if hiOp == "<=" {
			inHi = x <= hi
		}
		if inLo && inHi {
			return lo, hi, true
		}
	}
	return 0, 0, false
}
