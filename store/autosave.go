// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"log"
	"time"
)

// An Autosaver periodically saves a snapshot to a KV.
type Autosaver struct {
	KV       KV
	Interval time.Duration

	// Save writes the current state to kv. It is called from the
	// Autosaver's goroutine and must synchronize with mutations
	// itself.
	Save func(kv KV) error

	// Logger receives save errors. If nil, log.Default() is used.
	Logger *log.Logger
}

// Run saves every a.Interval until ctx is done. Save errors are
// logged and do not stop the Autosaver.
func (a *Autosaver) Run(ctx context.Context) {
	logger := a.Logger
	if logger == nil {
		logger = log.Default()
	}
	t := time.NewTicker(a.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := a.Save(a.KV); err != nil {
				logger.Printf("autosave: %v", err)
			}
		}
	}
}
