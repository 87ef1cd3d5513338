// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"fmt"
	"slices"

	"github.com/aclements/go-numline/interval"
	"github.com/aclements/go-numline/notify"
	"github.com/aclements/go-numline/ticks"
)

// These methods are the "on change" callbacks of the diagram's input
// fields. Each validates the edit, applies it or leaves the state
// unchanged, and publishes the notifications the edit calls for.

// UpdateScale moves the Scale's bounds; nil keeps a bound. The Scale
// regenerates its markers, so this publishes Resize and Redraw.
func (s *Session) UpdateScale(start, end *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scale.Update(start, end); err != nil {
		return err
	}
	s.publish(notify.Resize, notify.Redraw)
	return nil
}

// SetTickMarkers replaces the Scale's markers with a comma-separated
// list.
func (s *Session) SetTickMarkers(text string) error {
	xs, err := interval.ParseTickMarkers(text)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale.SetTickMarkers(xs)
	s.publish(notify.Redraw)
	return nil
}

// TickMarkersText returns the Scale's markers as a comma-separated
// list.
func (s *Session) TickMarkersText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale.TickMarkersText()
}

// AddRange appends a Range and returns its index.
func (s *Session) AddRange(start, end float64, label, color string) (int, error) {
	r, err := interval.NewRange(start, end, label, color)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges = append(s.ranges, r)
	s.publish(notify.Redraw)
	return len(s.ranges) - 1, nil
}

// A RangeEdit changes some fields of a Range. Nil fields are kept.
type RangeEdit struct {
	Start, End   *float64
	Color, Label *string
}

// UpdateRange applies e to range i. If the bounds are invalid,
// nothing changes.
func (s *Session) UpdateRange(i int, e RangeEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.rangeLocked(i)
	if err != nil {
		return err
	}
	if err := r.Update(e.Start, e.End); err != nil {
		return err
	}
	if e.Color != nil {
		r.Color = *e.Color
	}
	if e.Label != nil {
		r.Label = *e.Label
	}
	s.publish(notify.Redraw)
	return nil
}

// RemoveRange deletes range i. Later ranges move down one place in
// the stack.
func (s *Session) RemoveRange(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rangeLocked(i); err != nil {
		return err
	}
	s.ranges = slices.Delete(s.ranges, i, i+1)
	s.publish(notify.Redraw)
	return nil
}

// NumRanges returns the number of ranges.
func (s *Session) NumRanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ranges)
}

func (s *Session) rangeLocked(i int) (*interval.Range, error) {
	if i < 0 || i >= len(s.ranges) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrNoRange, i, len(s.ranges))
	}
	return s.ranges[i], nil
}

// SetGenerator selects the tick marker generator's policy and runs
// it. The generator does not change the Scale's markers; its output
// is offered for copying with GeneratorOutput.
func (s *Session) SetGenerator(p ticks.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.scale.Generate(p); err != nil {
		return err
	}
	s.genPolicy = p
	s.regenerate()
	return nil
}

// GeneratorOutput returns the last generator output as a
// comma-separated list.
func (s *Session) GeneratorOutput() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.genErr != nil {
		return "", s.genErr
	}
	return interval.FormatTickMarkers(s.genOut), nil
}

// regenerate reruns the generator over the current Scale. It runs on
// Resize, with s.mu held.
func (s *Session) regenerate() {
	s.genOut, s.genErr = s.scale.Generate(s.genPolicy)
}
