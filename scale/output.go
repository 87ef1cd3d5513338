// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

// OutputScale maps the unit interval [0, 1] produced by an input
// scale on to an output interval, such as a row of device pixels.
type OutputScale struct {
	min, max float64
	clamp    bool
}

// NewOutputScale returns an OutputScale onto [min, max] that crops
// inputs outside [0, 1].
func NewOutputScale(min, max float64) OutputScale {
	return OutputScale{min, max, false}
}

// Clamp makes Of pin inputs outside [0, 1] to the nearest end instead
// of cropping them.
func (s *OutputScale) Clamp() {
	s.clamp = true
}

// Of maps x in [0, 1] to the output interval. It returns false if x
// is cropped.
func (s OutputScale) Of(x float64) (float64, bool) {
	if x < 0 || x > 1 {
		if !s.clamp {
			return 0, false
		}
		x = min(max(x, 0), 1)
	}
	return x*(s.max-s.min) + s.min, true
}
