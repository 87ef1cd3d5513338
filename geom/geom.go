// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom assembles a Scale and its Ranges into a Scene: the
// ordered primitives an external renderer draws.
//
// Shapes and segments are in model coordinates and are meant to be
// drawn under Scene.Transform. Text is anchored at a model point, but
// its runs are offset in device pixels, since text is drawn with the
// ambient transform undone.
package geom

import (
	"math"
	"strconv"

	"github.com/aclements/go-numline/interval"
	"github.com/aclements/go-numline/label"
	"github.com/aclements/go-numline/scale"
)

// Default drawing parameters, in device pixels.
const (
	DefaultLineWidth  = 5
	DefaultTickHeight = 15

	// StackStep is the vertical distance between stacked ranges.
	StackStep = 50

	// ConnectorWidth is the width of the line joining a range to
	// the axis.
	ConnectorWidth = 2.5

	// TickLabelDrop is how far below the axis tick labels sit.
	TickLabelDrop = 20
	// TickLabelFontSize is the font size of tick labels.
	TickLabelFontSize = 15

	// LabelRise is how far above its range a range label sits.
	LabelRise = 15

	ScaleColor   = "rgb(0,10,20)"
	DefaultColor = "black"
)

// Options control Build.
type Options struct {
	CanvasWidth, CanvasHeight float64
	LineWidth, TickHeight     float64
}

func (o Options) withDefaults() Options {
	if o.LineWidth == 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.TickHeight == 0 {
		o.TickHeight = DefaultTickHeight
	}
	return o
}

// ShapeKind says what a Shape depicts.
type ShapeKind int

const (
	Body ShapeKind = iota
	Tick
)

func (k ShapeKind) String() string {
	if k == Tick {
		return "tick"
	}
	return "body"
}

// A Shape is a filled rectangle.
type Shape struct {
	Kind ShapeKind
	Rect interval.Rect
	Fill string

	// Range is the index of the range this shape belongs to, or
	// -1 for the Scale.
	Range int
}

// A Segment is a stroked line. Width is a horizontal model-space
// width, chosen to be pixel-constant.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
	Stroke         string
	Range          int
}

// Align is the horizontal alignment of text relative to its anchor.
type Align int

const (
	AlignStart Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "start"
}

// A Text is a piece of text anchored at model point (X, Y).
type Text struct {
	X, Y  float64
	Align Align
	Fill  string
	Runs  []label.Run
	Range int
}

// A Scene is everything needed to draw a number line, in draw order.
type Scene struct {
	Transform scale.Transform
	Shapes    []Shape
	Segments  []Segment
	Texts     []Text
}

// Build lays out s and rs. Ranges are stacked above the axis in
// order, each StackStep higher than the last. Build does not modify
// its arguments.
func Build(s *interval.Scale, rs []*interval.Range, o Options) (*Scene, error) {
	o = o.withDefaults()
	tr, err := scale.NewTransform(o.CanvasWidth, o.CanvasHeight, s.Start(), s.End())
	if err != nil {
		return nil, err
	}
	sc := &Scene{Transform: tr}

	for i, r := range s.Geometry(o.CanvasWidth, o.LineWidth, o.TickHeight) {
		kind := Tick
		if i == 0 {
			kind = Body
		}
		sc.Shapes = append(sc.Shapes, Shape{Kind: kind, Rect: r, Fill: ScaleColor, Range: -1})
	}
	sc.Texts = append(sc.Texts, tickLabels(s)...)

	for i, r := range rs {
		y := float64(StackStep * (i + 1))
		fill := r.Color
		if fill == "" {
			fill = DefaultColor
		}
		for j, rect := range r.Geometry(o.CanvasWidth, o.LineWidth, o.TickHeight, s.Delta()) {
			kind := Tick
			if j == 0 {
				kind = Body
			}
			sc.Shapes = append(sc.Shapes, Shape{Kind: kind, Rect: rect.Translate(0, y), Fill: fill, Range: i})
		}

		mid := r.Midpoint()
		sc.Segments = append(sc.Segments, Segment{
			X0: mid, Y0: y, X1: mid, Y1: 0,
			Width:  tr.PixelConstantWidth(ConnectorWidth),
			Stroke: fill,
			Range:  i,
		})

		if r.Label != "" {
			sc.Texts = append(sc.Texts, Text{
				X: mid, Y: y + LabelRise,
				Align: AlignStart,
				Fill:  fill,
				Runs:  label.Layout(r.Label),
				Range: i,
			})
		}
	}
	return sc, nil
}

func tickLabels(s *interval.Scale) []Text {
	mid := s.Midpoint()
	tol := 1e-9 * s.Delta()
	texts := make([]Text, 0, len(s.TickMarkers))
	for _, x := range s.TickMarkers {
		a := AlignRight
		if rel := x - mid; math.Abs(rel) <= tol {
			a = AlignCenter
		} else if rel < 0 {
			a = AlignLeft
		}
		texts = append(texts, Text{
			X: x, Y: -TickLabelDrop,
			Align: a,
			Fill:  DefaultColor,
			Runs: []label.Run{{
				Kind:     label.Normal,
				Text:     FormatMarker(x),
				FontSize: TickLabelFontSize,
			}},
			Range: -1,
		})
	}
	return texts
}

// FormatMarker formats a tick marker position for display.
func FormatMarker(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Hit maps device pixel (px, py) back to model coordinates and reports
// the range drawn there, or -1. Where ranges overlap, the last one
// drawn wins.
func (sc *Scene) Hit(px, py float64) (x, y float64, rng int) {
	x, y = sc.Transform.Invert(px, py)
	rng = -1
	for _, sh := range sc.Shapes {
		r := sh.Rect
		if sh.Range >= 0 && r.X <= x && x <= r.X+r.W && r.Y <= y && y <= r.Y+r.H {
			rng = sh.Range
		}
	}
	return x, y, rng
}
