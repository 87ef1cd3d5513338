// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render holds what the scene renderers share.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: "#rgb", "#rrggbb", "rgb(r,g,b)" or
// an SVG 1.1 color keyword.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, err
		}
		r, g, b := c.RGB255()
		return color.NRGBA{r, g, b, 0xff}, nil
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return color.NRGBA{r, g, b, 0xff}, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

// Color is ParseColor, with unparsable colors drawn black.
func Color(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.Black
	}
	return c
}
