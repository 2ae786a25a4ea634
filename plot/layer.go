// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"github.com/aclements/ggvl/internal/naming"
)

// A Layer is one geom drawn from one query.
type Layer struct {
	Geom     Geom
	Mappings Mappings

	// Consumed lists aesthetics a statistical transform consumed.
	// They are not rendered.
	Consumed []string

	// PartitionBy lists extra grouping columns.
	PartitionBy []string

	// Params holds literal geom parameters.
	Params map[string]interface{}

	// Query is the layer's source query. If empty, the plot's
	// global query is used.
	Query string

	// DerivedQuery is the query produced by a statistical
	// transform, or "".
	DerivedQuery string

	// DataKey names the dataset holding this layer's rows. If
	// empty, the layer index determines the key.
	DataKey string
}

// Key returns the dataset key of layer i.
func (l *Layer) Key(i int) string {
	if l.DataKey != "" {
		return l.DataKey
	}
	return naming.LayerKey(i)
}

// Param returns the value of parameter name, falling back to the
// geom's default.
func (l *Layer) Param(name string) interface{} {
	if v, ok := l.Params[name]; ok {
		return v
	}
	v, _ := l.Geom.Default(name)
	return v
}

// IsConsumed reports whether aes was consumed by a statistical
// transform.
func (l *Layer) IsConsumed(aes string) bool {
	for _, c := range l.Consumed {
		if c == aes {
			return true
		}
	}
	return false
}

// Validate checks that every required aesthetic is mapped and every
// mapped aesthetic is supported. i is the layer index for error
// context. Layers rewritten by a statistical transform may carry
// computed aesthetics the geom does not accept from users.
func (l *Layer) Validate(i int) error {
	info := l.Geom.Info()
	for _, req := range info.Required {
		if _, ok := l.Mappings[req]; !ok {
			return Validationf("Layer %d (%s) requires the '%s' aesthetic", i, info.Name, req).ForAesthetic(req).ForLayer(i)
		}
	}
	for _, name := range l.Mappings.Names() {
		if l.DerivedQuery != "" && l.Mappings[name].Column != "" && naming.IsSynthetic(l.Mappings[name].Column) {
			continue
		}
		if !l.Geom.Supports(name) {
			return Validationf("Layer %d (%s) does not support the '%s' aesthetic. Supported: %s", i, info.Name, name, join(info.Supported)).
				ForAesthetic(name).ForLayer(i).ForProperty(name, info.Supported)
		}
	}
	return nil
}

// Clone returns a copy of l whose maps and slices may be modified
// independently.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Mappings = l.Mappings.Clone()
	c.Consumed = append([]string(nil), l.Consumed...)
	c.PartitionBy = append([]string(nil), l.PartitionBy...)
	if l.Params != nil {
		c.Params = make(map[string]interface{}, len(l.Params))
		for k, v := range l.Params {
			c.Params[k] = v
		}
	}
	return &c
}
