// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want []Segment
	}{
		{"a_{bc}d", []Segment{{Normal, "a"}, {Subscript, "bc"}, {Normal, "d"}}},
		{"plain", []Segment{{Normal, "plain"}}},
		{"", nil},
		{"x_{0}", []Segment{{Normal, "x"}, {Subscript, "0"}}},
		{"_{i}", []Segment{{Subscript, "i"}}},
		{"a_{1}+b_{2}", []Segment{{Normal, "a"}, {Subscript, "1"}, {Normal, "+b"}, {Subscript, "2"}}},
		// An underscore without braces is not split out, but
		// still marks the piece as a subscript.
		{"snake_case", []Segment{{Subscript, "snakecase"}}},
	} {
		assert.Equal(t, tt.want, Segments(tt.in), "Segments(%q)", tt.in)
	}
}

func TestLayout(t *testing.T) {
	runs := Layout("a_{bc}d")
	require.Len(t, runs, 3)

	// Widths: 12 + 2*4 + 12 = 32, so the cursor starts at -16.
	assert.Equal(t, Run{Normal, "a", -16, 0, NormalFontSize}, runs[0])
	assert.Equal(t, Run{Subscript, "bc", -3.5, SubscriptDrop, SubscriptFontSize}, runs[1])
	assert.Equal(t, Run{Normal, "d", 6.5, 0, NormalFontSize}, runs[2])

	for i := 1; i < len(runs); i++ {
		assert.Less(t, runs[i-1].OffsetX, runs[i].OffsetX)
	}
}

func TestLayoutCentered(t *testing.T) {
	runs := Layout("abcd")
	require.Len(t, runs, 1)
	assert.Equal(t, -24.0, runs[0].OffsetX)

	assert.Empty(t, Layout(""))
}

func TestWidthCountsRunes(t *testing.T) {
	assert.Equal(t, 24.0, Width(Segments("αβ")))
	assert.Equal(t, 12.0+8, Width(Segments("λ_{μν}")))
}
