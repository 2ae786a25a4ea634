// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vlplot renders a layered plot of SQL query results as a
// Vega-Lite JSON document.
//
// Data comes from a SQLite database (-db) and any number of CSV files
// loaded as tables (-csv name=path). The plot is described by a YAML
// file (-spec), by -layer flags, or both. Each -layer flag is a
// shell-quoted list:
//
//	geom aes=column aes:=literal param=value ...
//
// aes=column maps an aesthetic to a result column and aes:=literal
// sets it to a constant. Other name=value pairs are geom parameters,
// except query=SQL (the layer's own query), data=key (its dataset
// key) and partition_by=col,col.
//
// For example:
//
//	vlplot -csv t=cars.csv -query 'SELECT * FROM t' \
//		-layer 'point x=wt y=mpg color=cyl size:=3' -o cars.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclements/ggvl/pipeline"
	"github.com/aclements/ggvl/plot"
	"github.com/aclements/ggvl/reader"
)

func main() {
	log.SetPrefix("vlplot: ")
	log.SetFlags(0)

	var (
		flagDB      = flag.String("db", "", "open SQLite database `dsn` (default: in-memory)")
		flagSpec    = flag.String("spec", "", "read the plot from YAML `file`")
		flagQuery   = flag.String("query", "", "`SQL` query for layers without their own")
		flagTitle   = flag.String("title", "", "chart `title`")
		flagDialect = flag.String("dialect", "sqlite", "SQL `dialect` of generated queries")
		flagOut     = flag.String("o", "", "write output to `file` (default: stdout)")
		flagVerbose = flag.Bool("v", false, "log each layer before rendering")
		flagCSV     csvList
		flagLayer   stringList
	)
	flag.Var(&flagCSV, "csv", "load CSV `name=path` as table name; can be given multiple times")
	flag.Var(&flagLayer, "layer", "add a `layer` ('geom aes=col ...'); can be given multiple times")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	db, err := reader.Open(*flagDB)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	for _, c := range flagCSV.list {
		if err := loadCSV(ctx, db, c.name, c.path); err != nil {
			log.Fatal(err)
		}
	}

	spec := &plot.Spec{}
	if *flagSpec != "" {
		data, err := os.ReadFile(*flagSpec)
		if err != nil {
			log.Fatal(err)
		}
		if spec, err = decodeSpec(data); err != nil {
			log.Fatalf("%s: %v", *flagSpec, err)
		}
	}
	if *flagQuery != "" {
		spec.Query = *flagQuery
	}
	if *flagTitle != "" {
		if spec.Labels == nil {
			spec.Labels = make(map[string]string)
		}
		spec.Labels["title"] = *flagTitle
	}
	for _, arg := range flagLayer.list {
		l, err := parseLayer(arg)
		if err != nil {
			log.Fatalf("-layer %q: %v", arg, err)
		}
		spec.Layers = append(spec.Layers, l)
	}

	if *flagVerbose {
		for i, l := range spec.Layers {
			log.Printf("layer %d: %s", i, describe(l))
		}
	}

	out, err := pipeline.Render(ctx, spec, db, *flagDialect, nil)
	if err != nil {
		log.Fatal(err)
	}
	out = append(out, '\n')
	if *flagOut == "" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(*flagOut, out, 0666)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadCSV(ctx context.Context, db *reader.DB, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := db.LoadCSV(ctx, name, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

type stringList struct {
	list []string
}

func (l *stringList) String() string {
	return strings.Join(l.list, " ")
}

func (l *stringList) Set(x string) error {
	l.list = append(l.list, x)
	return nil
}

type csvFlag struct {
	name, path string
}

type csvList struct {
	list []csvFlag
}

func (l *csvList) String() string {
	var parts []string
	for _, c := range l.list {
		parts = append(parts, c.name+"="+c.path)
	}
	return strings.Join(parts, " ")
}

func (l *csvList) Set(x string) error {
	name, path, ok := strings.Cut(x, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("want name=path, got %q", x)
	}
	l.list = append(l.list, csvFlag{name, path})
	return nil
}
