// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notify is a synchronous publish/subscribe bus with two
// channels, Redraw and Resize.
//
// Publish runs every subscriber of the channel, in subscription
// order, before it returns. Publishing on Resize does not imply a
// publish on Redraw; publishers that need both publish both.
package notify

import "fmt"

// Channel identifies one of the bus's channels.
type Channel int

const (
	// Redraw means the scene must be recomputed and drawn.
	Redraw Channel = iota
	// Resize means the ambient transform changed, either because
	// the canvas changed size or the Scale's span changed.
	Resize

	numChannels
)

func (c Channel) String() string {
	switch c {
	case Redraw:
		return "redraw"
	case Resize:
		return "resize"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel returns the Channel named s.
func ParseChannel(s string) (Channel, error) {
	for c := Channel(0); c < numChannels; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown notification channel %q", s)
}

// A Bus fans out notifications to subscribers. The zero Bus is ready
// to use, but a Bus must not be copied after first use.
//
// A Bus is not safe for concurrent use; callers serialize Subscribe
// and Publish.
type Bus struct {
	subs [numChannels][]func()
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers f to run on every Publish to c. Subscriptions
// last for the lifetime of the Bus.
func (b *Bus) Subscribe(c Channel, f func()) {
	b.check(c)
	b.subs[c] = append(b.subs[c], f)
}

// Publish runs the subscribers of c in the order they subscribed.
func (b *Bus) Publish(c Channel) {
	b.check(c)
	// Subscribers added during Publish run from the next Publish.
	for _, f := range b.subs[c] {
		f()
	}
}

func (b *Bus) check(c Channel) {
	if c < 0 || c >= numChannels {
		panic(fmt.Sprintf("notify: bad channel %d", int(c)))
	}
}
