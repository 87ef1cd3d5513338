// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session holds the state of one number line diagram: its
// Scale, its Ranges, the canvas they are drawn on, and the
// notification bus that tells views when to redraw.
//
// Every method runs to completion under a single lock, so mutations,
// scene computation and snapshots never interleave. Bus subscribers
// run with that lock held and must not call back into the Session.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/aclements/go-numline/geom"
	"github.com/aclements/go-numline/interval"
	"github.com/aclements/go-numline/notify"
	"github.com/aclements/go-numline/store"
	"github.com/aclements/go-numline/ticks"
)

// ErrNoRange is returned for a range index that does not exist.
var ErrNoRange = errors.New("no such range")

// Canvas is the size of the drawing surface in device pixels.
type Canvas struct {
	Width, Height float64
}

// MaxCanvas bounds each side of a Canvas, so a raster of it fits in
// memory.
const MaxCanvas = 1 << 14

// Check reports whether c is a usable canvas size.
func (c Canvas) Check() error {
	if !(c.Width > 0) || !(c.Height > 0) || c.Width > MaxCanvas || c.Height > MaxCanvas {
		return fmt.Errorf("canvas size %vx%v outside (0, %d]", c.Width, c.Height, MaxCanvas)
	}
	return nil
}

// Style holds the pixel-constant drawing sizes.
type Style struct {
	LineWidth, TickHeight float64
}

// A Session is one diagram.
type Session struct {
	mu sync.Mutex

	bus    *notify.Bus
	scale  *interval.Scale
	ranges []*interval.Range
	canvas Canvas
	style  Style
	logger *log.Logger

	// Tick marker generator. genOut is the output of the last run,
	// refreshed whenever the Scale's span changes.
	genPolicy ticks.Policy
	genOut    []float64
	genErr    error
}

// Options configure New and Load.
type Options struct {
	Canvas Canvas
	Style  Style
	Logger *log.Logger
}

// New returns a Session showing s and rs. If s is nil, the default
// Scale over [-1, 1] is used.
func New(bus *notify.Bus, s *interval.Scale, rs []*interval.Range, o Options) *Session {
	if s == nil {
		s = interval.DefaultScale()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Style.LineWidth == 0 {
		o.Style.LineWidth = geom.DefaultLineWidth
	}
	if o.Style.TickHeight == 0 {
		o.Style.TickHeight = geom.DefaultTickHeight
	}
	sess := &Session{
		bus:       bus,
		scale:     s,
		ranges:    append([]*interval.Range(nil), rs...),
		canvas:    o.Canvas,
		style:     o.Style,
		logger:    o.Logger,
		genPolicy: ticks.Amount{Count: ticks.DefaultAmount},
	}
	sess.regenerate()
	bus.Subscribe(notify.Resize, sess.regenerate)
	return sess
}

// Load returns a Session restored from kv. A missing or unusable
// Scale falls back to the default; unusable Ranges are dropped.
func Load(kv store.KV, bus *notify.Bus, o Options) (*Session, error) {
	s, err := store.LoadScale(kv)
	if err != nil {
		return nil, err
	}
	rs, dropped, err := store.LoadRanges(kv)
	if err != nil {
		return nil, err
	}
	sess := New(bus, s, rs, o)
	if s == nil {
		sess.logger.Printf("no usable saved scale; using %v", sess.scale.Bounds)
	}
	if dropped > 0 {
		sess.logger.Printf("dropped %d unusable saved ranges", dropped)
	}
	return sess, nil
}

// Subscribe registers f on the Session's bus.
func (s *Session) Subscribe(c notify.Channel, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bus.Subscribe(c, f)
}

// publish notifies c. s.mu must be held.
func (s *Session) publish(cs ...notify.Channel) {
	for _, c := range cs {
		s.bus.Publish(c)
	}
}

// Save writes a snapshot of the Scale and Ranges to kv.
func (s *Session) Save(kv store.KV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Save(kv, s.scale, s.ranges)
}

// State is a snapshot of a Session in its persisted form.
type State struct {
	Scale  store.ScaleRecord   `json:"scale"`
	Ranges []store.RangeRecord `json:"ranges"`
}

// State returns a snapshot of s.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{store.EncodeScale(s.scale), store.EncodeRanges(s.ranges)}
}

// Scene lays out the diagram on the Session's canvas.
func (s *Session) Scene() (*geom.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneLocked(s.canvas)
}

// SceneAt lays out the diagram on a canvas of the given size without
// changing the Session's canvas.
func (s *Session) SceneAt(c Canvas) (*geom.Scene, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneLocked(c)
}

func (s *Session) sceneLocked(c Canvas) (*geom.Scene, error) {
	return geom.Build(s.scale, s.ranges, geom.Options{
		CanvasWidth:  c.Width,
		CanvasHeight: c.Height,
		LineWidth:    s.style.LineWidth,
		TickHeight:   s.style.TickHeight,
	})
}

// Canvas returns the current canvas size.
func (s *Session) Canvas() Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// Resize changes the canvas size and publishes Resize and Redraw.
func (s *Session) Resize(c Canvas) error {
	if err := c.Check(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = c
	s.publish(notify.Resize, notify.Redraw)
	return nil
}
