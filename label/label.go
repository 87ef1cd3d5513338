// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package label lays out range labels with subscript markup.
//
// A label is plain text in which "_{...}" marks a subscript, as in
// "x_{min}". Layout does not measure glyphs; it estimates widths from
// character counts of a monospace font.
package label

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind distinguishes normal text from subscripts.
type Kind int

const (
	Normal Kind = iota
	Subscript
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case Subscript:
		return "Subscript"
	}
	return "Kind(?)"
}

// A Segment is a run of label text of a single Kind.
type Segment struct {
	Kind Kind
	Text string
}

// Font sizes and per-character advances in device pixels.
const (
	NormalFontSize    = 25
	SubscriptFontSize = 15

	// SubscriptDrop is how far a subscript's baseline is lowered.
	SubscriptDrop = 5

	normalEstimate    = 12
	subscriptEstimate = 4
	normalAdvance     = 12.5
	subscriptAdvance  = 5
)

// A Run is one piece of text to draw, positioned relative to the
// label's anchor. Offsets are in device pixels, with y growing down.
type Run struct {
	Kind     Kind
	Text     string
	OffsetX  float64
	OffsetY  float64
	FontSize float64
}

var subscriptRE = regexp.MustCompile(`_\{[^}]*\}`)

// Segments splits s into normal and subscript segments.
func Segments(s string) []Segment {
	var segs []Segment
	add := func(raw string) {
		if raw == "" {
			return
		}
		if strings.Contains(raw, "_") {
			segs = append(segs, Segment{Subscript, stripMarkup(raw)})
		} else {
			segs = append(segs, Segment{Normal, raw})
		}
	}
	last := 0
	for _, loc := range subscriptRE.FindAllStringIndex(s, -1) {
		add(s[last:loc[0]])
		add(s[loc[0]:loc[1]])
		last = loc[1]
	}
	add(s[last:])
	return segs
}

var markup = strings.NewReplacer("_", "", "{", "", "}", "")

func stripMarkup(s string) string {
	return markup.Replace(s)
}

// Width returns the estimated width of segs in device pixels.
func Width(segs []Segment) float64 {
	var w float64
	for _, seg := range segs {
		n := float64(utf8.RuneCountInString(seg.Text))
		if seg.Kind == Subscript {
			w += n * subscriptEstimate
		} else {
			w += n * normalEstimate
		}
	}
	return w
}

// Layout positions the segments of s so the label is centered
// horizontally on its anchor.
func Layout(s string) []Run {
	segs := Segments(s)
	runs := make([]Run, 0, len(segs))
	x := -Width(segs) / 2
	for _, seg := range segs {
		n := float64(utf8.RuneCountInString(seg.Text))
		r := Run{Kind: seg.Kind, Text: seg.Text, OffsetX: x}
		if seg.Kind == Subscript {
			r.OffsetY = SubscriptDrop
			r.FontSize = SubscriptFontSize
			x += n * subscriptAdvance
		} else {
			r.FontSize = NormalFontSize
			x += n * normalAdvance
		}
		runs = append(runs, r)
	}
	return runs
}
