// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aclements/ggvl/plot"
)

// A Dialect adapts generated SQL to one database engine.
type Dialect struct {
	Name string

	// intFloor is set if the engine lacks FLOOR and integer casts
	// truncate toward zero.
	intFloor bool

	// stddev is set if the engine has STDDEV_SAMP.
	stddev bool
}

var dialects = map[string]*Dialect{
	"generic":  {Name: "generic"},
	"sqlite":   {Name: "sqlite", intFloor: true},
	"postgres": {Name: "postgres", stddev: true},
	"duckdb":   {Name: "duckdb", stddev: true},
}

var dialectAliases = map[string]string{
	"":           "generic",
	"sqlite3":    "sqlite",
	"postgresql": "postgres",
	"pg":         "postgres",
	"duck":       "duckdb",
}

// GetDialect returns the dialect named name.
func GetDialect(name string) (*Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := dialectAliases[key]; ok {
		key = alias
	}
	if d, ok := dialects[key]; ok {
		return d, nil
	}
	return nil, plot.Validationf("unknown SQL dialect '%s'. Allowed: duckdb, generic, postgres, sqlite", name).ForProperty("dialect", []string{"duckdb", "generic", "postgres", "sqlite"})
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Quote returns ident as a SQL identifier, quoting it only if it is
// not a plain identifier.
func (d *Dialect) Quote(ident string) string {
	if plainIdent.MatchString(ident) {
		return ident
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Floor returns an expression for the floor of the non-negative
// expression x.
func (d *Dialect) Floor(x string) string {
	if d.intFloor {
		return fmt.Sprintf("CAST(%s AS INTEGER)", x)
	}
	return fmt.Sprintf("FLOOR(%s)", x)
}

// Stddev returns an aggregate computing the sample standard deviation
// of x.
func (d *Dialect) Stddev(x string) string {
	if d.stddev {
		return fmt.Sprintf("STDDEV_SAMP(%s)", x)
	}
	return fmt.Sprintf("SQRT((SUM(%[1]s * %[1]s) - SUM(%[1]s) * SUM(%[1]s) / COUNT(%[1]s)) / (COUNT(%[1]s) - 1))", x)
}

// Real returns x cast to a floating point type.
func (d *Dialect) Real(x string) string {
	if d.Name == "postgres" {
		return fmt.Sprintf("CAST(%s AS DOUBLE PRECISION)", x)
	}
	if d.Name == "duckdb" {
		return fmt.Sprintf("CAST(%s AS DOUBLE)", x)
	}
	return fmt.Sprintf("CAST(%s AS REAL)", x)
}
