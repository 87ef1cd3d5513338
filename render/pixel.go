// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/aclements/go-numline/interval"
	"github.com/aclements/go-numline/scale"
)

// PixelRect maps the model rectangle r to device pixels under tr. The
// horizontal extent is pinned to the canvas, so ranges reaching far
// past the Scale yield canvas-sized rectangles. ok is false if r lies
// entirely off the canvas.
func PixelRect(tr scale.Transform, r interval.Rect) (x, y, w, h float64, ok bool) {
	u0, u1 := tr.Unit(r.X), tr.Unit(r.X+r.W)
	if u1 < 0 || u0 > 1 {
		return 0, 0, 0, 0, false
	}
	out := tr.Output()
	out.Clamp()
	x0, _ := out.Of(u0)
	x1, _ := out.Of(u1)
	// Model y grows up; flip so the height is positive.
	_, y0 := tr.Apply(r.X, r.Y+r.H)
	_, y1 := tr.Apply(r.X, r.Y)
	return x0, y0, x1 - x0, y1 - y0, true
}
