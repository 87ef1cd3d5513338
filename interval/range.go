// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interval

import "github.com/aclements/go-numline/scale"

// A Range is a labeled, colored interval drawn above the Scale.
//
// Color and Label are optional; the empty string means unset.
type Range struct {
	Bounds
	Color string
	Label string
}

// NewRange returns a Range over [start, end].
func NewRange(start, end float64, label, color string) (*Range, error) {
	b, err := NewBounds(start, end)
	if err != nil {
		return nil, err
	}
	return &Range{Bounds: b, Color: color, Label: label}, nil
}

// Update moves the bounds of r. A nil argument keeps the current
// value. If the resulting interval is invalid, r is unchanged and the
// error wraps ErrInvalidRange.
func (r *Range) Update(start, end *float64) error {
	return r.Bounds.update(start, end)
}

// Geometry returns the body, start tick and end tick of r.
//
// lineWidth and tickHeight are in device pixels. Tick widths are
// pixel-constant under the ambient transform, which is set by the
// enclosing Scale, so referenceDelta must be that Scale's Delta.
func (r *Range) Geometry(canvasWidth, lineWidth, tickHeight, referenceDelta float64) [3]Rect {
	tw := scale.PixelConstantWidth(lineWidth, canvasWidth, referenceDelta)
	return [3]Rect{
		body(r.Bounds, lineWidth),
		tick(r.start, tw, tickHeight),
		tick(r.end, tw, tickHeight),
	}
}

func body(b Bounds, lineWidth float64) Rect {
	return Rect{b.start, -lineWidth / 2, b.Delta(), lineWidth}
}

func tick(x, width, height float64) Rect {
	return Rect{x - width/2, -height / 2, width, height}
}
