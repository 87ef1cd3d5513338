// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numline is the root of a geometry and layout engine for
// annotated number lines: a horizontal scale with tick marks and a
// stack of labeled ranges above it.
//
// The engine is split into small packages. interval holds the Range
// and Scale models, ticks generates tick marker positions, scale maps
// model coordinates to device pixels, label lays out subscripted
// labels, and geom assembles all of these into a Scene. notify, store
// and session tie the models to views and persistent storage, and the
// render packages draw a Scene. Command numline serves a diagram over
// HTTP.
package numline
