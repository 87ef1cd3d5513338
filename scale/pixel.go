// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale maps between the model coordinates of a number line
// and the device pixels of the canvas it is drawn on.
//
// The renderer draws in model coordinates under an affine transform
// that stretches the Scale's span across the canvas width and flips
// the vertical axis without changing its magnitude. Features that
// must keep a fixed on-screen thickness regardless of zoom, such as
// tick marks, therefore need their horizontal model-space size
// derived from the current zoom; see PixelConstantWidth.
package scale

// PixelConstantWidth returns the model-space width that renders as
// desiredPx device pixels on a canvas canvasWidth pixels wide showing
// a span of scaleDelta model units.
//
// The result always uses the Scale's span, even for geometry of a
// narrower Range, because the ambient transform is set by the Scale.
func PixelConstantWidth(desiredPx, canvasWidth, scaleDelta float64) float64 {
	return desiredPx * scaleDelta / canvasWidth
}
