// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rasterrender draws a geom.Scene into an image.
package rasterrender

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"

	"github.com/aclements/go-numline/geom"
	"github.com/aclements/go-numline/render"
)

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = freetype.ParseFont(goregular.TTF)
	})
	return fontTTF, fontErr
}

// Render draws sc on a white canvas the size of sc's transform.
func Render(sc *geom.Scene) (*image.NRGBA, error) {
	f, err := loadFont()
	if err != nil {
		return nil, err
	}

	tr := sc.Transform
	w, h := int(math.Ceil(tr.Width)), int(math.Ceil(tr.Height))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	fill := func(src string) {
		z.Draw(img, img.Bounds(), image.NewUniform(render.Color(src)), image.Point{})
		z.Reset(w, h)
	}

	for _, sh := range sc.Shapes {
		x0, y0, pw, ph, ok := render.PixelRect(tr, sh.Rect)
		if !ok {
			continue
		}
		x1, y1 := x0+pw, y0+ph
		// Keep hairline ticks visible.
		if x1-x0 < 1 {
			mid := (x0 + x1) / 2
			x0, x1 = mid-0.5, mid+0.5
		}
		polygon(z, x0, y0, x1, y0, x1, y1, x0, y1)
		fill(sh.Fill)
	}

	for _, seg := range sc.Segments {
		u0, u1 := tr.Unit(seg.X0), tr.Unit(seg.X1)
		if (u0 < 0 && u1 < 0) || (u0 > 1 && u1 > 1) {
			continue
		}
		x0, y0 := tr.Apply(seg.X0, seg.Y0)
		x1, y1 := tr.Apply(seg.X1, seg.Y1)
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// Offset perpendicular to the segment by half the width.
		hw := seg.Width * tr.H() / 2
		nx, ny := -dy/l*hw, dx/l*hw
		polygon(z, x0+nx, y0+ny, x1+nx, y1+ny, x1-nx, y1-ny, x0-nx, y0-ny)
		fill(seg.Stroke)
	}

	ctx := freetype.NewContext()
	ctx.SetFont(f)
	ctx.SetDst(img)
	ctx.SetClip(img.Bounds())
	faces := make(map[float64]font.Face)
	out := tr.Output()
	for _, txt := range sc.Texts {
		if _, ok := out.Of(tr.Unit(txt.X)); txt.Range < 0 && !ok {
			continue
		}
		ax, ay := tr.Apply(txt.X, txt.Y)
		ctx.SetSrc(image.NewUniform(render.Color(txt.Fill)))
		for _, run := range txt.Runs {
			face, ok := faces[run.FontSize]
			if !ok {
				face = truetype.NewFace(f, &truetype.Options{Size: run.FontSize})
				faces[run.FontSize] = face
			}
			adv := float64(font.MeasureString(face, run.Text)) / 64
			x := ax + run.OffsetX
			switch txt.Align {
			case geom.AlignCenter:
				x -= adv / 2
			case geom.AlignRight:
				x -= adv
			}
			ctx.SetFontSize(run.FontSize)
			pt := freetype.Pt(int(math.Round(x)), int(math.Round(ay+run.OffsetY)))
			if _, err := ctx.DrawString(run.Text, pt); err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

func polygon(z *vector.Rasterizer, pts ...float64) {
	z.MoveTo(float32(pts[0]), float32(pts[1]))
	for i := 2; i < len(pts); i += 2 {
		z.LineTo(float32(pts[i]), float32(pts[i+1]))
	}
	z.ClosePath()
}

// WritePNG renders sc and encodes it as a PNG to w.
func WritePNG(w io.Writer, sc *geom.Scene) error {
	img, err := Render(sc)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
