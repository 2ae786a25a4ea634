// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "__ggvl_layer_2__", LayerKey(2))
	assert.Equal(t, "__ggvl_stat_density__", StatColumn("density"))
	assert.Equal(t, "density", StatName(StatColumn("density")))
	assert.Equal(t, "", StatName("density"))
	assert.Equal(t, "", StatName(Source))
}

func TestIsSynthetic(t *testing.T) {
	for _, name := range []string{Source, Component, LayerKey(0), StatColumn("value")} {
		assert.True(t, IsSynthetic(name), name)
	}
	for _, name := range []string{"x", "__ggvl___", "__ggvl_", "ggvl_x__"} {
		assert.False(t, IsSynthetic(name), name)
	}
}
