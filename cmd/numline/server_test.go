// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-numline/geom"
	"github.com/aclements/go-numline/notify"
	"github.com/aclements/go-numline/session"
)

type testServer struct {
	*httptest.Server
	srv  *server
	sess *session.Session
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sess := session.New(notify.New(), nil, nil, session.Options{
		Canvas: session.Canvas{Width: 400, Height: 200},
	})
	srv := newServer(sess)
	ts := httptest.NewServer(srv.mux())
	t.Cleanup(ts.Close)
	return &testServer{ts, srv, sess}
}

func (ts *testServer) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestServeSVG(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/?width=300")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `width="300" height="200"`)

	code, _ := ts.do(t, "GET", "/?width=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, "GET", "/?height=-1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, "GET", "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServePNG(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/image.png?width=50&height=20")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestScene(t *testing.T) {
	ts := newTestServer(t)
	code, body := ts.do(t, "GET", "/scene", "")
	require.Equal(t, http.StatusOK, code)
	var sc struct {
		Transform struct{ Width, Start, End float64 }
		Shapes    []json.RawMessage
		Texts     []json.RawMessage
	}
	require.NoError(t, json.Unmarshal([]byte(body), &sc))
	assert.Equal(t, 400.0, sc.Transform.Width)
	assert.Equal(t, -1.0, sc.Transform.Start)
	// Axis body plus 11 default ticks, one label per tick.
	assert.Len(t, sc.Shapes, 12)
	assert.Len(t, sc.Texts, 11)
}

func TestRanges(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, "POST", "/ranges", `{"start":-0.5,"end":0.5,"label":"a_{1}","color":"red"}`)
	require.Equal(t, http.StatusCreated, code, body)
	assert.JSONEq(t, `{"index":0}`, body)

	for _, bad := range []string{
		`{"start":1,"end":0}`,
		`{"start":1,"end":1}`,
		`{"start":1}`,
		`{"start":0,"end":1,"bogus":true}`,
		`not json`,
	} {
		code, _ := ts.do(t, "POST", "/ranges", bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
	assert.Equal(t, 1, ts.sess.NumRanges())

	code, _ = ts.do(t, "PATCH", "/ranges/0", `{"end":-1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(t, "PATCH", "/ranges/0", `{"label":"b"}`)
	assert.Equal(t, http.StatusNoContent, code)
	rs := ts.sess.State().Ranges
	require.Len(t, rs, 1)
	assert.Equal(t, 0.5, *rs[0].End)
	assert.Equal(t, "b", *rs[0].Label)

	code, _ = ts.do(t, "PATCH", "/ranges/7", `{"label":"c"}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = ts.do(t, "DELETE", "/ranges/x", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = ts.do(t, "DELETE", "/ranges/0", "")
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, 0, ts.sess.NumRanges())
}

func TestScale(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, "POST", "/scale", `{"start":0,"end":10}`)
	require.Equal(t, http.StatusOK, code, body)
	code, body = ts.do(t, "GET", "/scale/ticks", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0,1,2,3,4,5,6,7,8,9,10\n", body)

	// Invalid edits leave the scale alone.
	code, _ = ts.do(t, "POST", "/scale", `{"start":20}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, 0.0, *ts.sess.State().Scale.Start)

	code, _ = ts.do(t, "PUT", "/scale/ticks", "1, 2.5,,4")
	assert.Equal(t, http.StatusNoContent, code)
	_, body = ts.do(t, "GET", "/scale/ticks", "")
	assert.Equal(t, "1,2.5,4\n", body)

	code, _ = ts.do(t, "PUT", "/scale/ticks", "1,x")
	assert.Equal(t, http.StatusBadRequest, code)
	_, body = ts.do(t, "GET", "/scale/ticks", "")
	assert.Equal(t, "1,2.5,4\n", body)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)

	// The default policy is 11 evenly spaced markers.
	code, body := ts.do(t, "GET", "/ticks", "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "-1,-0.8,-0.6,-0.4,-0.2,0,0.2,0.4,0.6,0.8,1\n", body)

	code, body = ts.do(t, "POST", "/ticks", `{"mode":"interval","interval":0.5}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "-1,-0.5,0,0.5,1\n", body)
	// Reading the output does not change the policy.
	_, body = ts.do(t, "GET", "/ticks", "")
	assert.Equal(t, "-1,-0.5,0,0.5,1\n", body)

	code, body = ts.do(t, "POST", "/ticks", `{"amount":3}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "-1,0,1\n", body)

	for _, bad := range []string{
		`{"mode":"bogus"}`,
		`{"amount":1}`,
		`{"amount":"x"}`,
		`{"mode":"interval","interval":0}`,
		`{"mode":"interval","offset":"x"}`,
		`{"mode":"amount","step":2}`,
	} {
		code, _ := ts.do(t, "POST", "/ticks", bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
	_, body = ts.do(t, "GET", "/ticks", "")
	assert.Equal(t, "-1,0,1\n", body)

	// The generator never changes the scale's own markers.
	assert.Equal(t, "-1,-0.8,-0.6,-0.4,-0.2,0,0.2,0.4,0.6,0.8,1", ts.sess.TickMarkersText())
}

func TestHit(t *testing.T) {
	ts := newTestServer(t)
	code, body := ts.do(t, "POST", "/ranges", `{"start":-0.5,"end":0.5}`)
	require.Equal(t, http.StatusCreated, code, body)

	sc, err := ts.sess.Scene()
	require.NoError(t, err)
	var body0 *geom.Shape
	for i, sh := range sc.Shapes {
		if sh.Range == 0 && sh.Kind == geom.Body {
			body0 = &sc.Shapes[i]
		}
	}
	require.NotNil(t, body0)
	r := body0.Rect
	px, py := sc.Transform.Apply(r.X+r.W/2, r.Y+r.H/2)

	type hit struct {
		X, Y  float64
		Range int
	}
	get := func(q string) hit {
		t.Helper()
		code, body := ts.do(t, "GET", "/hit?"+q, "")
		require.Equal(t, http.StatusOK, code, body)
		var h hit
		require.NoError(t, json.Unmarshal([]byte(body), &h))
		return h
	}

	h := get(fmt.Sprintf("px=%v&py=%v", px, py))
	assert.Equal(t, 0, h.Range)
	assert.InDelta(t, r.X+r.W/2, h.X, 1e-9)
	assert.InDelta(t, r.Y+r.H/2, h.Y, 1e-9)

	// Canvas column 0 is the scale's start, far below the range.
	h = get("px=0&py=199")
	assert.Equal(t, -1, h.Range)
	assert.InDelta(t, -1, h.X, 1e-9)

	for _, q := range []string{"px=1", "px=x&py=1", "px=NaN&py=1", "px=1&py=Inf", "px=1&py=1&width=0"} {
		code, _ := ts.do(t, "GET", "/hit?"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
	}
}

func TestCanvas(t *testing.T) {
	ts := newTestServer(t)
	code, _ := ts.do(t, "POST", "/canvas", `{"width":800,"height":300}`)
	assert.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, session.Canvas{Width: 800, Height: 300}, ts.sess.Canvas())

	for _, bad := range []string{
		`{"width":0,"height":300}`,
		`{"width":1e10,"height":1e10}`,
		`{"width":800,"height":16385}`,
	} {
		code, _ = ts.do(t, "POST", "/canvas", bad)
		assert.Equal(t, http.StatusBadRequest, code, bad)
	}
	assert.Equal(t, session.Canvas{Width: 800, Height: 300}, ts.sess.Canvas())

	// Per-request sizes are held to the same limit.
	for _, q := range []string{"width=1e10", "height=16385", "width=0"} {
		code, _ = ts.do(t, "GET", "/image.png?"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
		code, _ = ts.do(t, "GET", "/?"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
	}
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// The server registers the client after the handshake.
	require.Eventually(t, func() bool {
		ts.srv.hub.mu.Lock()
		defer ts.srv.hub.mu.Unlock()
		return len(ts.srv.hub.clients) == 1
	}, 5*time.Second, 10*time.Millisecond)

	read := func() string {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var ev event
		require.NoError(t, conn.ReadJSON(&ev))
		return ev.Event
	}

	code, _ := ts.do(t, "POST", "/ranges", `{"start":0,"end":1}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "redraw", read())

	code, _ = ts.do(t, "POST", "/scale", `{"end":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "resize", read())
	assert.Equal(t, "redraw", read())

	conn.Close()
	require.Eventually(t, func() bool {
		ts.srv.hub.mu.Lock()
		defer ts.srv.hub.mu.Unlock()
		return len(ts.srv.hub.clients) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestEventsChannel(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events?channel=resize"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool {
		ts.srv.hub.mu.Lock()
		defer ts.srv.hub.mu.Unlock()
		return len(ts.srv.hub.clients) == 1
	}, 5*time.Second, 10*time.Millisecond)

	// A range edit only redraws, so this client hears nothing of it.
	code, _ := ts.do(t, "POST", "/ranges", `{"start":0,"end":1}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = ts.do(t, "POST", "/canvas", `{"width":500,"height":200}`)
	require.Equal(t, http.StatusNoContent, code)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "resize", ev.Event)

	code, _ = ts.do(t, "GET", "/events?channel=bogus", "")
	assert.Equal(t, http.StatusBadRequest, code)
}
