// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-numline/scale"
	"github.com/aclements/go-numline/ticks"
)

// A Scale is the axis of the number line: an interval and the
// positions of its tick markers.
type Scale struct {
	Bounds

	// TickMarkers are the marker positions in ascending order.
	// Generated markers lie in [Start, End]; markers set with
	// SetTickMarkers are taken as given.
	TickMarkers []float64
}

// autoPolicy generates the markers of a Scale whenever its bounds
// change.
var autoPolicy = ticks.Amount{Count: ticks.DefaultAmount}

// NewScale returns a Scale over [start, end] with the default
// markers.
func NewScale(start, end float64) (*Scale, error) {
	b, err := NewBounds(start, end)
	if err != nil {
		return nil, err
	}
	s := &Scale{Bounds: b}
	s.regenerate()
	return s, nil
}

// DefaultScale returns the Scale over [-1, 1].
func DefaultScale() *Scale {
	s, err := NewScale(-1, 1)
	if err != nil {
		panic(err)
	}
	return s
}

// Update moves the bounds of s and regenerates its markers with
// Amount(11). Any markers set by other means are discarded. If the
// resulting interval is invalid, s is unchanged.
func (s *Scale) Update(start, end *float64) error {
	if err := s.Bounds.update(start, end); err != nil {
		return err
	}
	s.regenerate()
	return nil
}

func (s *Scale) regenerate() {
	xs, err := ticks.Generate(s.start, s.end, autoPolicy)
	if err != nil {
		// Bounds are finite and autoPolicy is valid.
		panic(err)
	}
	s.TickMarkers = xs
}

// Generate runs the tick marker generator over the bounds of s. It
// does not modify s.
func (s *Scale) Generate(p ticks.Policy) ([]float64, error) {
	return ticks.Generate(s.start, s.end, p)
}

// SetTickMarkers replaces the markers of s with a copy of xs.
func (s *Scale) SetTickMarkers(xs []float64) {
	s.TickMarkers = append([]float64(nil), xs...)
}

// TickMarkersText returns the markers of s as a comma-separated list.
func (s *Scale) TickMarkersText() string {
	return FormatTickMarkers(s.TickMarkers)
}

// FormatTickMarkers formats xs as a comma-separated list using the
// shortest decimal representation of each value.
func FormatTickMarkers(xs []float64) string {
	var sb strings.Builder
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	}
	return sb.String()
}

// ParseTickMarkers parses a comma-separated list of markers. Blank
// entries are skipped.
func ParseTickMarkers(text string) ([]float64, error) {
	xs := []float64{}
	for _, f := range strings.Split(text, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad tick marker %q: %w", f, err)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("bad tick marker %q: not finite", f)
		}
		xs = append(xs, x)
	}
	return xs, nil
}

// Geometry returns the body of s followed by one rectangle per tick
// marker. Tick widths are pixel-constant relative to s itself.
func (s *Scale) Geometry(canvasWidth, lineWidth, tickHeight float64) []Rect {
	tw := scale.PixelConstantWidth(lineWidth, canvasWidth, s.Delta())
	rs := make([]Rect, 0, 1+len(s.TickMarkers))
	rs = append(rs, body(s.Bounds, lineWidth))
	for _, x := range s.TickMarkers {
		rs = append(rs, tick(x, tw, tickHeight))
	}
	return rs
}
