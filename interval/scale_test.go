// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-numline/ticks"
)

func TestNewScale(t *testing.T) {
	s := DefaultScale()
	assert.Equal(t, []float64{-1, -0.8, -0.6, -0.4, -0.2, 0, 0.2, 0.4, 0.6, 0.8, 1}, s.TickMarkers)
	for _, x := range s.TickMarkers {
		assert.True(t, s.Contains(x), "marker %v outside %v", x, s.Bounds)
	}

	_, err := NewScale(2, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestScaleUpdateRegenerates(t *testing.T) {
	s := DefaultScale()
	s.SetTickMarkers([]float64{-0.5, 0.5})

	require.NoError(t, s.Update(nil, Ptr(9)))
	assert.Len(t, s.TickMarkers, ticks.DefaultAmount)
	assert.Equal(t, -1.0, s.TickMarkers[0])
	assert.Equal(t, 9.0, s.TickMarkers[10])
	assert.Equal(t, 4.0, s.TickMarkers[5])

	before := append([]float64(nil), s.TickMarkers...)
	assert.ErrorIs(t, s.Update(Ptr(9), nil), ErrInvalidRange)
	assert.Equal(t, before, s.TickMarkers)
	assert.Equal(t, -1.0, s.Start())
}

func TestScaleGenerate(t *testing.T) {
	s, err := NewScale(0, 1)
	require.NoError(t, err)
	before := append([]float64(nil), s.TickMarkers...)

	xs, err := s.Generate(ticks.Interval{Step: 0.25})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, xs)
	assert.Equal(t, before, s.TickMarkers, "Generate must not modify the Scale")

	_, err = s.Generate(ticks.Amount{Count: 1})
	assert.ErrorIs(t, err, ticks.ErrInvalidParameter)
}

func TestScaleGeometry(t *testing.T) {
	s, err := NewScale(0, 4)
	require.NoError(t, err)
	s.SetTickMarkers([]float64{0, 2, 4})

	g := s.Geometry(800, 5, 15)
	require.Len(t, g, 4)
	assert.Equal(t, Rect{0, -2.5, 4, 5}, g[0])
	for i, x := range []float64{0, 2, 4} {
		r := g[i+1]
		assert.Equal(t, 0.025, r.W)
		assert.InDelta(t, x, r.X+r.W/2, 1e-15)
		assert.Equal(t, -7.5, r.Y)
		assert.Equal(t, 15.0, r.H)
	}
}

func TestTickMarkersText(t *testing.T) {
	s := DefaultScale()
	assert.Equal(t, "-1,-0.8,-0.6,-0.4,-0.2,0,0.2,0.4,0.6,0.8,1", s.TickMarkersText())

	xs, err := ParseTickMarkers(" 1, 2.5,, -3 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, xs)

	xs, err = ParseTickMarkers("")
	require.NoError(t, err)
	assert.Empty(t, xs)

	_, err = ParseTickMarkers("1,two")
	assert.Error(t, err)
	_, err = ParseTickMarkers("NaN")
	assert.Error(t, err)
}
