// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval is the value model of a number line: the Scale
// drawn as the axis and the labeled Ranges drawn above it.
//
// Both Range and Scale embed a Bounds, which enforces Start < End,
// and both satisfy Boundable. Neither depends on any rendering or
// input machinery.
package interval

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when an interval would not satisfy
// Start < End.
var ErrInvalidRange = errors.New("start has to be smaller than the end")

// Boundable is implemented by anything with an interval extent.
type Boundable interface {
	Start() float64
	End() float64
	Delta() float64
}

// Bounds is a validated interval [start, end] with start < end.
//
// The zero Bounds is not valid; use NewBounds.
type Bounds struct {
	start, end float64
}

// NewBounds returns the interval [start, end].
func NewBounds(start, end float64) (Bounds, error) {
	if err := check(start, end); err != nil {
		return Bounds{}, err
	}
	return Bounds{start, end}, nil
}

func check(start, end float64) error {
	if math.IsNaN(start) || math.IsNaN(end) {
		return fmt.Errorf("%w: missing bound in [%v, %v]", ErrInvalidRange, start, end)
	}
	if math.IsInf(start, 0) || math.IsInf(end, 0) {
		return fmt.Errorf("%w: unbounded [%v, %v]", ErrInvalidRange, start, end)
	}
	if start >= end {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, start, end)
	}
	if math.Abs(start) > MaxBound || math.Abs(end) > MaxBound {
		return fmt.Errorf("%w: [%v, %v] exceeds ±%v", ErrInvalidRange, start, end, MaxBound)
	}
	return nil
}

// MaxBound is the largest magnitude of a bound. Within it, Delta and
// the arithmetic of tick marker generation stay finite.
const MaxBound = math.MaxFloat64 / 1000

func (b Bounds) Start() float64 { return b.start }

func (b Bounds) End() float64 { return b.end }

// Delta returns End - Start.
func (b Bounds) Delta() float64 { return b.end - b.start }

// Midpoint returns the center of the interval.
func (b Bounds) Midpoint() float64 { return b.start + b.Delta()/2 }

// Contains reports whether x lies in [Start, End].
func (b Bounds) Contains(x float64) bool {
	return b.start <= x && x <= b.end
}

// update replaces either bound. A nil argument keeps the current
// value. Both bounds change or neither does.
func (b *Bounds) update(start, end *float64) error {
	s, e := b.start, b.end
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	if err := check(s, e); err != nil {
		return err
	}
	b.start, b.end = s, e
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%v, %v]", b.start, b.end)
}

// Rect is an axis-aligned rectangle in model coordinates. X and W are
// in model units; Y and H are in device pixels, since the vertical
// axis is never stretched.
type Rect struct {
	X, Y, W, H float64
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// Ptr returns a pointer to x. It is convenient for the optional
// arguments of Update.
func Ptr(x float64) *float64 {
	return &x
}
