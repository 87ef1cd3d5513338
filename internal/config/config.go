// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads numline's TOML configuration file.
//
// A configuration file looks like
//
//	[canvas]
//	width = 1200
//	height = 600
//
//	[style]
//	line_width = 5
//	tick_height = 15
//
//	[store]
//	path = "numline.json"
//	autosave_seconds = 5
//
//	[http]
//	addr = "localhost:8002"
//
// Every field is optional and defaults to the values above.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/aclements/go-numline/session"
)

type Config struct {
	Canvas Canvas `toml:"canvas"`
	Style  Style  `toml:"style"`
	Store  Store  `toml:"store"`
	HTTP   HTTP   `toml:"http"`
}

// Canvas is the default canvas size in device pixels.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Style holds pixel-constant drawing sizes.
type Style struct {
	LineWidth  float64 `toml:"line_width"`
	TickHeight float64 `toml:"tick_height"`
}

type Store struct {
	Path            string  `toml:"path"`
	AutosaveSeconds float64 `toml:"autosave_seconds"`
}

type HTTP struct {
	Addr string `toml:"addr"`
}

// Autosave bounds, in seconds.
const (
	MinAutosave = 2
	MaxAutosave = 5
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: Canvas{Width: 1200, Height: 600},
		Style:  Style{LineWidth: 5, TickHeight: 15},
		Store:  Store{Path: "numline.json", AutosaveSeconds: 5},
		HTTP:   HTTP{Addr: "localhost:8002"},
	}
}

// AutosaveInterval returns the autosave period.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.Store.AutosaveSeconds * float64(time.Second))
}

// Validate checks c for values the rest of numline cannot use.
func (c *Config) Validate() error {
	if err := (session.Canvas{Width: c.Canvas.Width, Height: c.Canvas.Height}).Check(); err != nil {
		return err
	}
	if !(c.Style.LineWidth > 0) || !(c.Style.TickHeight > 0) {
		return fmt.Errorf("line width %v and tick height %v must be positive", c.Style.LineWidth, c.Style.TickHeight)
	}
	if s := c.Store.AutosaveSeconds; s < MinAutosave || s > MaxAutosave {
		return fmt.Errorf("autosave interval %vs outside [%d, %d]", s, MinAutosave, MaxAutosave)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store path is empty")
	}
	return nil
}

// Parse decodes a TOML configuration over the defaults and validates
// the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file at path. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes c as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
