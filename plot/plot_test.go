// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilies(t *testing.T) {
	assert.True(t, IsPositional("xmin"))
	assert.False(t, IsPositional("color"))
	assert.Equal(t, "y", Primary("yend"))
	assert.Equal(t, "color", Primary("colour"))
	assert.Equal(t, "size", Primary("size"))
	assert.Equal(t, []string{"x", "xmin", "xmax", "xend"}, Family("x"))
}

func TestMappings(t *testing.T) {
	m := Mappings{"y": Col("value"), "x": Col("cat"), "color": Lit("red")}
	assert.Equal(t, []string{"color", "x", "y"}, m.Names())
	c, ok := m.Column("x")
	assert.True(t, ok)
	assert.Equal(t, "cat", c)
	_, ok = m.Column("color")
	assert.False(t, ok)

	m2 := m.Clone()
	m2["x"] = Mapping{Column: "__s__", Original: "cat"}
	assert.Equal(t, "cat", m["x"].Column)
	assert.Equal(t, "cat", m2["x"].DisplayName())
}

func TestLayerValidate(t *testing.T) {
	l := &Layer{Geom: Point, Mappings: Mappings{"x": Col("a")}}
	err := l.Validate(2)
	require.Error(t, err)
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "y", v.Aesthetic)
	assert.Equal(t, 2, v.Layer)

	l.Mappings["y"] = Col("b")
	assert.NoError(t, l.Validate(2))

	l.Mappings["label"] = Col("c")
	err = l.Validate(0)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "'label'")
}

func TestLayerParams(t *testing.T) {
	l := &Layer{Geom: Boxplot, Params: map[string]interface{}{"coef": 3.0}}
	assert.Equal(t, 3.0, l.Param("coef"))
	assert.Equal(t, true, l.Param("outliers"))
	assert.Nil(t, l.Param("orientation"))
	assert.Equal(t, "__ggvl_layer_4__", l.Key(4))
	l.DataKey = "shared"
	assert.Equal(t, "shared", l.Key(4))
}

func TestParseGeom(t *testing.T) {
	g, err := ParseGeom("Violin")
	require.NoError(t, err)
	assert.Equal(t, Violin, g)
	assert.True(t, g.Info().Stat)
	_, err = ParseGeom("hexbin")
	assert.True(t, IsValidation(err))

	g, err = ParseGeom("label")
	require.NoError(t, err)
	assert.Equal(t, LabelGeom, g)
	assert.Equal(t, "label", g.String())
	assert.True(t, g.Supports("label"))
}

func TestErrors(t *testing.T) {
	err := Validationf("%s scale does not support SETTING '%s'", "discrete", "expand").ForProperty("expand", []string{"reverse"})
	assert.Equal(t, "discrete scale does not support SETTING 'expand'", err.Error())
	assert.Equal(t, -1, err.Layer)
	assert.Equal(t, []string{"reverse"}, err.Allowed)

	ierr := Internalf("Missing column info for '%s'", "x")
	assert.True(t, IsInternal(fmt.Errorf("wrapped: %w", ierr)))
	assert.False(t, IsValidation(ierr))

	cause := fmt.Errorf("boom")
	rerr := Renderf("cannot serialize: %v", cause)
	assert.True(t, IsRender(rerr))
	assert.ErrorIs(t, rerr, cause)
}

func TestSchemaOf(t *testing.T) {
	tab := new(table.Builder).
		Add("name", []string{"a", "b"}).
		Add("n", []int64{1, 2}).
		Add("v", []float64{1.5, math.NaN()}).
		Add("when", []time.Time{time.Unix(0, 0), time.Unix(60, 0)}).
		Add("day", []Date{NewDate(2024, 1, 2), NewDate(2024, 1, 3)}).
		Add("mixed", []interface{}{nil, true}).
		Done()
	s := SchemaOf(tab)
	assert.Equal(t, []string{"name", "n", "v", "when", "day", "mixed"}, s.Names())
	want := map[string]ColumnType{
		"name": TypeString, "n": TypeInteger, "v": TypeNumber,
		"when": TypeDateTime, "day": TypeDate, "mixed": TypeBool,
	}
	for name, typ := range want {
		c, ok := s.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, c.Type, name)
	}
	c, _ := s.Lookup("name")
	assert.True(t, c.Discrete)
	c, _ = s.Lookup("v")
	assert.False(t, c.Discrete)
	_, ok := s.Lookup("nope")
	assert.False(t, ok)
}

func TestValues(t *testing.T) {
	assert.Equal(t, []interface{}{1.5, nil}, Values([]float64{1.5, math.NaN()}))
	assert.Equal(t, []interface{}{"a"}, Values([]string{"a"}))

	f, ok := ToFloat(int64(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	_, ok = ToFloat("3")
	assert.False(t, ok)
	f, ok = ToFloat(NewTimeOfDay(0, 1, 0))
	assert.True(t, ok)
	assert.Equal(t, 60000.0, f)

	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "10", FormatValue(10.0))
	assert.Equal(t, "2024-01-02", FormatValue(NewDate(2024, 1, 2)))
	assert.Equal(t, "13:30:00", FormatValue(NewTimeOfDay(13, 30, 0)))
	assert.Equal(t, "1970-01-01T00:01:00", FormatValue(time.Unix(60, 0)))

	d := NewDate(2024, 3, 1)
	ms, _ := ToFloat(d)
	assert.Equal(t, "2024-03-01", FormatTemporal(ms, ScaleDate))
	assert.Equal(t, "2024-03-01T00:00:00", FormatTemporal(ms, ScaleDateTime))

	assert.Nil(t, JSONValue(math.Inf(1)))
	assert.Equal(t, "2024-03-01", JSONValue(d))
}

func TestProjectionValidate(t *testing.T) {
	p := &Projection{Coord: Polar, Properties: map[string]interface{}{"theta": "x", "start": 90.0}}
	assert.NoError(t, p.Validate())
	p.Properties["ratio"] = 1.0
	err := p.Validate()
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "polar coordinate system does not support property 'ratio'")
}

func TestScaleKinds(t *testing.T) {
	k, err := ParseScaleKind("Binned")
	require.NoError(t, err)
	assert.Equal(t, ScaleBinned, k)
	assert.True(t, ScaleTime.IsTemporal())
	assert.Equal(t, ScaleDate, TypeDate.ScaleKind())
	assert.Equal(t, ScaleDiscrete, TypeBool.ScaleKind())
	assert.Equal(t, ScaleContinuous, TypeInteger.ScaleKind())
}
