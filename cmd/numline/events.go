// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aclements/go-numline/notify"
	"github.com/aclements/go-numline/session"
)

// clientQueue is how many events may wait for a slow client before
// further events for it are dropped.
const clientQueue = 16

const writeTimeout = 10 * time.Second

// An event is the message sent to /events clients on each bus
// publish.
type event struct {
	Event string `json:"event"`
}

// A hub forwards session notifications to websocket clients.
type hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

// A client receives the events of the channels it asked for.
type client struct {
	channels map[notify.Channel]bool
	q        chan []byte
}

func newHub(sess *session.Session) *hub {
	h := &hub{clients: make(map[*client]struct{})}
	for _, c := range []notify.Channel{notify.Redraw, notify.Resize} {
		msg, err := json.Marshal(event{c.String()})
		if err != nil {
			panic(err)
		}
		sess.Subscribe(c, func() { h.broadcast(c, msg) })
	}
	return h
}

// broadcast queues msg for every client listening on c. It runs with
// the session locked, so it never blocks.
func (h *hub) broadcast(c notify.Channel, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		if !cl.channels[c] {
			continue
		}
		select {
		case cl.q <- msg:
		default:
		}
	}
}

// parseChannels returns the channels named by the "channel" query
// parameters of req. With none, a client gets every channel.
func parseChannels(req *http.Request) (map[notify.Channel]bool, error) {
	names := req.URL.Query()["channel"]
	if len(names) == 0 {
		names = []string{notify.Redraw.String(), notify.Resize.String()}
	}
	cs := make(map[notify.Channel]bool)
	for _, name := range names {
		c, err := notify.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		cs[c] = true
	}
	return cs, nil
}

func (h *hub) add(channels map[notify.Channel]bool) *client {
	cl := &client{channels, make(chan []byte, clientQueue)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl] = struct{}{}
	return cl
}

func (h *hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, cl)
}

func (h *hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	channels, err := parseChannels(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Print(err)
		return
	}
	defer conn.Close()

	cl := h.add(channels)
	defer h.remove(cl)

	// Clients only listen, but reading is how a close is noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case msg := <-cl.q:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}
