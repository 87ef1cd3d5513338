// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/aclements/go-numline/render/rasterrender"
	"github.com/aclements/go-numline/render/svgrender"
	"github.com/aclements/go-numline/session"
	"github.com/aclements/go-numline/ticks"
)

// maxBody limits the size of request bodies.
const maxBody = 1 << 20

type server struct {
	sess *session.Session
	hub  *hub
}

func newServer(sess *session.Session) *server {
	return &server{sess: sess, hub: newHub(sess)}
}

func (s *server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleSVG)
	mux.HandleFunc("GET /image.png", s.handlePNG)
	mux.HandleFunc("GET /scene", s.handleScene)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /canvas", s.handleCanvas)
	mux.HandleFunc("POST /scale", s.handleScale)
	mux.HandleFunc("GET /scale/ticks", s.handleGetTicks)
	mux.HandleFunc("PUT /scale/ticks", s.handlePutTicks)
	mux.HandleFunc("GET /ticks", s.handleGenerated)
	mux.HandleFunc("POST /ticks", s.handleGenerate)
	mux.HandleFunc("GET /hit", s.handleHit)
	mux.HandleFunc("POST /ranges", s.handleAddRange)
	mux.HandleFunc("PATCH /ranges/{i}", s.handleUpdateRange)
	mux.HandleFunc("DELETE /ranges/{i}", s.handleRemoveRange)
	mux.Handle("GET /events", s.hub)
	return mux
}

// httpError reports err to the client. Edits that fail validation
// leave the session unchanged, so they are the client's fault.
func httpError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, session.ErrNoRange) {
		code = http.StatusNotFound
	}
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Print(err)
	}
}

func readJSON(req *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("bad request body: %w", err)
	}
	return nil
}

// canvasOf returns the session canvas, overridden by the width and
// height query parameters. SceneAt checks the result.
func (s *server) canvasOf(req *http.Request) (session.Canvas, error) {
	c := s.sess.Canvas()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &c.Width}, {"height", &c.Height}} {
		v := req.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("bad %s %q", p.name, v)
		}
		*p.dst = x
	}
	return c, nil
}

func (s *server) handleSVG(w http.ResponseWriter, req *http.Request) {
	c, err := s.canvasOf(req)
	if err != nil {
		httpError(w, err)
		return
	}
	sc, err := s.sess.SceneAt(c)
	if err != nil {
		httpError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := svgrender.Render(w, sc); err != nil {
		log.Print(err)
	}
}

func (s *server) handlePNG(w http.ResponseWriter, req *http.Request) {
	c, err := s.canvasOf(req)
	if err != nil {
		httpError(w, err)
		return
	}
	sc, err := s.sess.SceneAt(c)
	if err != nil {
		httpError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := rasterrender.WritePNG(w, sc); err != nil {
		log.Print(err)
	}
}

func (s *server) handleScene(w http.ResponseWriter, req *http.Request) {
	c, err := s.canvasOf(req)
	if err != nil {
		httpError(w, err)
		return
	}
	sc, err := s.sess.SceneAt(c)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *server) handleState(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.State())
}

func (s *server) handleCanvas(w http.ResponseWriter, req *http.Request) {
	var c struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := readJSON(req, &c); err != nil {
		httpError(w, err)
		return
	}
	if err := s.sess.Resize(session.Canvas{Width: c.Width, Height: c.Height}); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleScale(w http.ResponseWriter, req *http.Request) {
	var b struct {
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
	}
	if err := readJSON(req, &b); err != nil {
		httpError(w, err)
		return
	}
	if err := s.sess.UpdateScale(b.Start, b.End); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.State().Scale)
}

func (s *server) handleGetTicks(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, s.sess.TickMarkersText())
}

func (s *server) handlePutTicks(w http.ResponseWriter, req *http.Request) {
	text, err := io.ReadAll(io.LimitReader(req.Body, maxBody))
	if err != nil {
		httpError(w, err)
		return
	}
	if err := s.sess.SetTickMarkers(string(text)); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerated returns the tick marker generator's last output as
// text for the client to copy.
func (s *server) handleGenerated(w http.ResponseWriter, req *http.Request) {
	out, err := s.sess.GeneratorOutput()
	if err != nil {
		httpError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, out)
}

// handleGenerate selects the generator's policy, runs it, and returns
// its output.
func (s *server) handleGenerate(w http.ResponseWriter, req *http.Request) {
	b := struct {
		Mode     string   `json:"mode"`
		Amount   *int     `json:"amount"`
		Interval *float64 `json:"interval"`
		Offset   float64  `json:"offset"`
	}{Mode: "amount"}
	if err := readJSON(req, &b); err != nil {
		httpError(w, err)
		return
	}
	amount, step := ticks.DefaultAmount, ticks.DefaultStep
	if b.Amount != nil {
		amount = *b.Amount
	}
	if b.Interval != nil {
		step = *b.Interval
	}
	p, err := ticks.ParsePolicy(b.Mode, amount, step, b.Offset)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := s.sess.SetGenerator(p); err != nil {
		httpError(w, err)
		return
	}
	s.handleGenerated(w, req)
}

// handleHit reports the model coordinates of a pixel and the range
// drawn there, or -1.
func (s *server) handleHit(w http.ResponseWriter, req *http.Request) {
	c, err := s.canvasOf(req)
	if err != nil {
		httpError(w, err)
		return
	}
	var px, py float64
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"px", &px}, {"py", &py}} {
		v := req.URL.Query().Get(p.name)
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			httpError(w, fmt.Errorf("bad %s %q", p.name, v))
			return
		}
		*p.dst = x
	}
	sc, err := s.sess.SceneAt(c)
	if err != nil {
		httpError(w, err)
		return
	}
	x, y, rng := sc.Hit(px, py)
	writeJSON(w, http.StatusOK, struct {
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Range int     `json:"range"`
	}{x, y, rng})
}

type rangeBody struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Color *string  `json:"color"`
	Label *string  `json:"label"`
}

func (s *server) handleAddRange(w http.ResponseWriter, req *http.Request) {
	var b rangeBody
	if err := readJSON(req, &b); err != nil {
		httpError(w, err)
		return
	}
	if b.Start == nil || b.End == nil {
		httpError(w, fmt.Errorf("range needs start and end"))
		return
	}
	var color, label string
	if b.Color != nil {
		color = *b.Color
	}
	if b.Label != nil {
		label = *b.Label
	}
	i, err := s.sess.AddRange(*b.Start, *b.End, label, color)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Index int `json:"index"`
	}{i})
}

func rangeIndex(req *http.Request) (int, error) {
	v := req.PathValue("i")
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", session.ErrNoRange, v)
	}
	return i, nil
}

func (s *server) handleUpdateRange(w http.ResponseWriter, req *http.Request) {
	i, err := rangeIndex(req)
	if err != nil {
		httpError(w, err)
		return
	}
	var b rangeBody
	if err := readJSON(req, &b); err != nil {
		httpError(w, err)
		return
	}
	err = s.sess.UpdateRange(i, session.RangeEdit{Start: b.Start, End: b.End, Color: b.Color, Label: b.Label})
	if err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleRemoveRange(w http.ResponseWriter, req *http.Request) {
	i, err := rangeIndex(req)
	if err != nil {
		httpError(w, err)
		return
	}
	if err := s.sess.RemoveRange(i); err != nil {
		httpError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
