// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgrender draws a geom.Scene as an SVG document.
package svgrender

import (
	"fmt"
	"io"

	"github.com/aclements/go-numline/geom"
	"github.com/aclements/go-numline/render"
)

// FontFamily is the font used for all text. Label layout assumes a
// monospace font.
const FontFamily = "consolas, monospace"

// Render writes sc as an SVG document to w.
func Render(w io.Writer, sc *geom.Scene) error {
	tr := sc.Transform
	svg := NewSVG(w, tr.Width, tr.Height)
	svg.fprintf("<rect width=\"100%%\" height=\"100%%\" fill=\"white\"/>\n")

	for _, sh := range sc.Shapes {
		x, y, pw, ph, ok := render.PixelRect(tr, sh.Rect)
		if !ok {
			continue
		}
		svg.SetFill(render.Color(sh.Fill))
		svg.Rect(x, y, pw, ph).Fill()
	}
	svg.SetFill(nil)

	for _, seg := range sc.Segments {
		x0, y0 := tr.Apply(seg.X0, seg.Y0)
		x1, y1 := tr.Apply(seg.X1, seg.Y1)
		svg.SetStroke(render.Color(seg.Stroke))
		svg.SetLineWidth(seg.Width * tr.H())
		svg.MoveTo(x0, y0).LineTo(x1, y1).Stroke()
	}
	svg.SetStroke(nil)

	out := tr.Output()
	for _, txt := range sc.Texts {
		// Markers may be set anywhere; drop labels of those off the canvas.
		if _, ok := out.Of(tr.Unit(txt.X)); txt.Range < 0 && !ok {
			continue
		}
		ax, ay := tr.Apply(txt.X, txt.Y)
		opts := TextOpts{Anchor: anchor(txt.Align), FontFamily: FontFamily}
		svg.SetFill(render.Color(txt.Fill))
		for _, run := range txt.Runs {
			opts.FontSize = run.FontSize
			svg.Text(ax+run.OffsetX, ay+run.OffsetY, opts, run.Text)
		}
	}
	svg.SetFill(nil)

	// Hover targets showing each range's bounds.
	for _, sh := range sc.Shapes {
		if sh.Range < 0 || sh.Kind != geom.Body {
			continue
		}
		x, y, pw, ph, ok := render.PixelRect(tr, sh.Rect)
		if !ok {
			continue
		}
		text := fmt.Sprintf("range %d: [%s, %s]", sh.Range,
			geom.FormatMarker(sh.Rect.X), geom.FormatMarker(sh.Rect.X+sh.Rect.W))
		svg.Rect(x, y, pw, ph).TooltipHighlight(text)
	}

	return svg.Done()
}

func anchor(a geom.Align) Anchor {
	switch a {
	case geom.AlignCenter:
		return AnchorMiddle
	case geom.AlignRight:
		return AnchorEnd
	}
	return AnchorStart
}
