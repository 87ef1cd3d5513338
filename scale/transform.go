// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"

	mscale "github.com/aclements/go-moremath/scale"
)

// Transform is the ambient affine transform from model coordinates to
// device pixels.
//
// Horizontally, [Start, End] is stretched over [0, Width]. Vertically,
// the axis is flipped and model y=0 sits at the middle of the canvas.
type Transform struct {
	Width, Height float64
	Start, End    float64
}

// NewTransform returns the transform for a canvas of the given pixel
// size showing [start, end].
func NewTransform(width, height, start, end float64) (Transform, error) {
	if !(width > 0) || !(height > 0) {
		return Transform{}, fmt.Errorf("canvas size %vx%v must be positive", width, height)
	}
	if !(start < end) {
		return Transform{}, fmt.Errorf("transform span [%v, %v] is empty", start, end)
	}
	return Transform{width, height, start, end}, nil
}

func (t Transform) linear() mscale.Linear {
	return mscale.Linear{Min: t.Start, Max: t.End}
}

// Delta returns the span of model units across the canvas.
func (t Transform) Delta() float64 {
	return t.End - t.Start
}

// H returns the horizontal scale factor in pixels per model unit.
func (t Transform) H() float64 {
	return t.Width / t.Delta()
}

// V returns the vertical scale factor. It is always -1: the vertical
// axis is flipped but model units are pixels.
func (t Transform) V() float64 {
	return -1
}

// Apply maps the model point (x, y) to device pixels.
func (t Transform) Apply(x, y float64) (px, py float64) {
	return t.X(x), t.Height/2 + t.V()*y
}

// X maps a model x coordinate to a pixel column.
func (t Transform) X(x float64) float64 {
	return t.linear().Map(x) * t.Width
}

// Invert maps device pixels back to model coordinates.
func (t Transform) Invert(px, py float64) (x, y float64) {
	return t.linear().Unmap(px / t.Width), (py - t.Height/2) / t.V()
}

// Output returns an OutputScale onto the pixel columns of the canvas.
// Composing it with Unit gives the same mapping as X, but lets the
// caller choose how off-canvas positions are treated.
func (t Transform) Output() OutputScale {
	return NewOutputScale(0, t.Width)
}

// Unit maps a model x coordinate to [0, 1] across the canvas.
func (t Transform) Unit(x float64) float64 {
	return t.linear().Map(x)
}

// PixelConstantWidth returns the model-space width that renders as px
// device pixels under t.
func (t Transform) PixelConstantWidth(px float64) float64 {
	return PixelConstantWidth(px, t.Width, t.Delta())
}
