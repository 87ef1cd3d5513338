// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{0xff, 0, 0, 0xff}},
		{"#0F0", color.NRGBA{0, 0xff, 0, 0xff}},
		{"rgb(0,10,20)", color.NRGBA{0, 10, 20, 0xff}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 0xff}},
		{"Blue", color.NRGBA{0, 0, 0xff, 0xff}},
		{"black", color.NRGBA{0, 0, 0, 0xff}},
		{"orange", color.NRGBA{0xff, 0xa5, 0, 0xff}},
		{" Chartreuse ", color.NRGBA{0x7f, 0xff, 0, 0xff}},
		{"grey", color.NRGBA{0x80, 0x80, 0x80, 0xff}},
	} {
		c, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, color.NRGBAModel.Convert(c), tt.in)
	}

	for _, in := range []string{"", "#12", "notacolor", "rgb(1,2)"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
		assert.Equal(t, color.Black, Color(in))
	}
}
