// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot defines the grammar-of-graphics plot model.
//
// A Spec is a plot as written by the user: layers, aesthetic
// mappings, partial scale specifications, facets, a projection and
// guides. Resolving a Spec against query results produces a Plot,
// whose scales are complete. The two phases are distinct types.
package plot

import "strings"

// Coord is a coordinate system.
type Coord int

const (
	Cartesian Coord = iota
	Polar
	Flip
)

func (c Coord) String() string {
	switch c {
	case Polar:
		return "polar"
	case Flip:
		return "flip"
	}
	return "cartesian"
}

// ParseCoord returns the coordinate system named name.
func ParseCoord(name string) (Coord, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cartesian", "":
		return Cartesian, nil
	case "polar":
		return Polar, nil
	case "flip":
		return Flip, nil
	}
	return Cartesian, Validationf("unknown coordinate system '%s'", name)
}

// Projection is a coordinate system and its properties.
type Projection struct {
	Coord      Coord
	Properties map[string]interface{}
}

var coordProps = map[Coord][]string{
	Cartesian: {"ratio", "clip", "xlim", "ylim"},
	Polar:     {"theta", "start", "clip"},
	Flip:      {"clip"},
}

// Validate checks p's properties against the coordinate system.
func (p *Projection) Validate() error {
	allowed := coordProps[p.Coord]
	for k := range p.Properties {
		if !contains(allowed, k) {
			return Validationf("%s coordinate system does not support property '%s'. Allowed: %s", p.Coord, k, join(allowed)).ForProperty(k, allowed)
		}
	}
	return nil
}

// Facet splits a plot into small multiples.
type Facet struct {
	// Wrap lists the variables of a wrapped facet.
	Wrap []string

	// Rows and Cols list the variables of a grid facet.
	Rows, Cols []string

	// Properties holds "free" and "ncol".
	Properties map[string]interface{}

	// Labels renames facet values.
	Labels map[string]Label
}

// IsWrap reports whether f is a wrapped facet.
func (f *Facet) IsWrap() bool {
	return len(f.Wrap) > 0
}

// Vars returns every facet variable.
func (f *Facet) Vars() []string {
	var out []string
	out = append(out, f.Wrap...)
	out = append(out, f.Rows...)
	out = append(out, f.Cols...)
	return out
}

// GuideKind is the kind of guide drawn for an aesthetic.
type GuideKind int

const (
	GuideLegend GuideKind = iota
	GuideAxis
	GuideColorbar
	GuideNone
)

// ParseGuideKind returns the guide kind named name.
func ParseGuideKind(name string) (GuideKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legend":
		return GuideLegend, nil
	case "axis":
		return GuideAxis, nil
	case "colorbar", "colourbar":
		return GuideColorbar, nil
	case "none":
		return GuideNone, nil
	}
	return GuideLegend, Validationf("unknown guide type '%s'", name)
}

// A Guide overrides the axis or legend of one aesthetic.
type Guide struct {
	Kind       GuideKind
	Properties map[string]interface{}
}

// Spec is an unresolved plot.
type Spec struct {
	// Query is the default source query for layers without their
	// own.
	Query string

	Layers     []*Layer
	Scales     []*ScaleSpec
	Facet      *Facet
	Projection *Projection

	// Guides maps aesthetics to guide overrides.
	Guides map[string]*Guide

	// Labels holds "title" and per-aesthetic axis/legend titles.
	Labels map[string]string
}

// ScaleFor returns the user scale for the family of aes, or nil.
func (s *Spec) ScaleFor(aes string) *ScaleSpec {
	p := Primary(aes)
	for _, sc := range s.Scales {
		if Primary(sc.Aesthetic) == p {
			return sc
		}
	}
	return nil
}

// Plot is a resolved plot ready for rendering.
type Plot struct {
	Layers     []*Layer
	Scales     map[string]*Scale
	Facet      *Facet
	Projection *Projection
	Guides     map[string]*Guide
	Labels     map[string]string
}

// Scale returns the resolved scale for the family of aes, or nil.
func (p *Plot) Scale(aes string) *Scale {
	return p.Scales[Primary(aes)]
}

// Label returns the label override for aes's family.
func (p *Plot) Label(aes string) (string, bool) {
	l, ok := p.Labels[aes]
	return l, ok
}

// Guide returns the guide for aes's family, or nil.
func (p *Plot) Guide(aes string) *Guide {
	return p.Guides[Primary(aes)]
}
