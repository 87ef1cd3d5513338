// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ticks generates tick marker positions along an interval.
package ticks

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// ErrInvalidParameter is returned when a Policy's parameters are out
// of their domain.
var ErrInvalidParameter = errors.New("invalid tick generation parameter")

const (
	// DefaultAmount is the marker count used for a Scale's
	// automatically generated markers.
	DefaultAmount = 11

	// DefaultStep is the initial step of the interval generator.
	DefaultStep = 0.1
)

// A Policy selects how markers are generated. It is either an Amount
// or an Interval.
type Policy interface {
	validate() error
	generate(start, end float64) []float64
	String() string
}

// Amount generates Count evenly spaced markers, including both
// endpoints, rounded to two decimal places.
type Amount struct {
	Count int
}

// Interval generates markers every Step starting at
// start+StartOffset, up to and including end.
type Interval struct {
	Step        float64
	StartOffset float64
}

// Generate returns the markers of p over [start, end] in ascending
// order.
func Generate(start, end float64, p Policy) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidParameter)
	}
	if !finite(start) || !finite(end) {
		return nil, fmt.Errorf("%w: bounds [%v, %v]", ErrInvalidParameter, start, end)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if iv, ok := p.(Interval); ok {
		if n := (end - start - iv.StartOffset) / iv.Step; n > MaxMarkers {
			return nil, fmt.Errorf("%w: %s yields more than %d markers", ErrInvalidParameter, iv, MaxMarkers)
		}
	}
	return p.generate(start, end), nil
}

// MaxMarkers bounds the number of markers a Policy may produce.
const MaxMarkers = 1 << 16

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func (a Amount) validate() error {
	if a.Count < 2 {
		return fmt.Errorf("%w: amount %d < 2", ErrInvalidParameter, a.Count)
	}
	if a.Count > MaxMarkers {
		return fmt.Errorf("%w: amount %d > %d", ErrInvalidParameter, a.Count, MaxMarkers)
	}
	return nil
}

func (a Amount) generate(start, end float64) []float64 {
	xs := vec.Linspace(start, end, a.Count)
	for i, x := range xs {
		xs[i] = round2(x)
	}
	return xs
}

func (a Amount) String() string {
	return fmt.Sprintf("amount(%d)", a.Count)
}

func (iv Interval) validate() error {
	// !(x > 0) also rejects NaN.
	if !(iv.Step > 0) || math.IsInf(iv.Step, 1) {
		return fmt.Errorf("%w: interval %v", ErrInvalidParameter, iv.Step)
	}
	if !finite(iv.StartOffset) {
		return fmt.Errorf("%w: start offset %v", ErrInvalidParameter, iv.StartOffset)
	}
	return nil
}

func (iv Interval) generate(start, end float64) []float64 {
	first := start + iv.StartOffset
	xs := []float64{}
	for k := 0; ; k++ {
		x := first + float64(k)*iv.Step
		if x > end {
			break
		}
		xs = append(xs, x)
	}
	return xs
}

func (iv Interval) String() string {
	return fmt.Sprintf("interval(%v, %v)", iv.Step, iv.StartOffset)
}

// round2 rounds x half-up to two decimal places. The epsilon nudge
// makes values like 0.285 (stored as 0.28499999...) round up.
func round2(x float64) float64 {
	// Beyond this, x has no fractional digits to round.
	if math.Abs(x) >= 1<<52/100 {
		return x
	}
	return math.Floor((x+epsilon)*100+0.5) / 100
}

// epsilon is the difference between 1 and the next float64.
const epsilon = 0x1p-52

// ParsePolicy builds a Policy from the generator's mode selector,
// which is either "amount" or "interval". The parameters that do not
// apply to mode are ignored.
func ParsePolicy(mode string, amount int, step, offset float64) (Policy, error) {
	var p Policy
	switch mode {
	case "amount":
		p = Amount{amount}
	case "interval":
		p = Interval{step, offset}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, mode)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}
