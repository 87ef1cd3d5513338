// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command numline draws annotated number lines.
//
// A number line is a horizontal scale with tick marks and a stack of
// labeled, colored ranges drawn above it. numline keeps one diagram in
// a JSON store file and offers three subcommands:
//
//	numline serve [-config file] [-http addr]
//
// serves the diagram over HTTP. GET / returns the diagram as SVG, and
// the edit endpoints (POST /scale, PUT /scale/ticks, POST /ranges,
// PATCH and DELETE /ranges/{i}) change it. POST /ticks runs the tick
// marker generator and GET /ticks returns its last output. GET /hit
// reports the range under a pixel. Clients connected to /events are
// told when to redraw; a channel=redraw or channel=resize query
// parameter limits which notifications they get. The diagram is saved
// to the store every few seconds.
//
//	numline render [-config file] [-width w] [-height h] -o out.svg|out.png
//
// draws the stored diagram to a file.
//
//	numline ticks [-config file] -mode amount|interval [-amount n] [-interval step] [-offset x]
//
// prints tick marker positions for the stored scale as a
// comma-separated list, ready to paste into PUT /scale/ticks.
//
// Range labels may contain subscripts written as x_{sub}.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/aclements/go-numline/internal/config"
	"github.com/aclements/go-numline/notify"
	"github.com/aclements/go-numline/render/rasterrender"
	"github.com/aclements/go-numline/render/svgrender"
	"github.com/aclements/go-numline/session"
	"github.com/aclements/go-numline/store"
	"github.com/aclements/go-numline/ticks"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s serve|render|ticks [flags]\n", os.Args[0])
	os.Exit(2)
}

func main() {
	log.SetPrefix("numline: ")
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
	}
	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "serve":
		serve(args)
	case "render":
		renderCmd(args)
	case "ticks":
		ticksCmd(args)
	default:
		usage()
	}
}

// loadConfig parses fs's flags and returns the configuration named by
// -config.
func loadConfig(fs *flag.FlagSet, args []string, flagConfig *string) *config.Config {
	fs.Parse(args)
	if fs.NArg() > 0 {
		fs.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func openSession(cfg *config.Config, kv store.KV) *session.Session {
	sess, err := session.Load(kv, notify.New(), session.Options{
		Canvas: session.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height},
		Style:  session.Style{LineWidth: cfg.Style.LineWidth, TickHeight: cfg.Style.TickHeight},
	})
	if err != nil {
		log.Fatal(err)
	}
	return sess
}

func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		flagConfig = fs.String("config", "", "read configuration from `file`")
		flagHttp   = fs.String("http", "", "serve HTTP on `address` (overrides the configuration)")
	)
	cfg := loadConfig(fs, args, flagConfig)
	if *flagHttp != "" {
		cfg.HTTP.Addr = *flagHttp
	}

	kv := store.NewFileStore(cfg.Store.Path)
	sess := openSession(cfg, kv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	saver := &store.Autosaver{KV: kv, Interval: cfg.AutosaveInterval(), Save: sess.Save}
	go saver.Run(ctx)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: newServer(sess).mux()}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	fmt.Fprintf(os.Stderr, "serving on %s\n", cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	if err := sess.Save(kv); err != nil {
		log.Fatal(err)
	}
}

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var (
		flagConfig = fs.String("config", "", "read configuration from `file`")
		flagOut    = fs.String("o", "", "write image to `file` (.svg or .png)")
		flagWidth  = fs.Float64("width", 0, "canvas `width` in pixels (default from configuration)")
		flagHeight = fs.Float64("height", 0, "canvas `height` in pixels (default from configuration)")
	)
	cfg := loadConfig(fs, args, flagConfig)
	if *flagOut == "" {
		fs.Usage()
		os.Exit(2)
	}
	c := session.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}
	if *flagWidth != 0 {
		c.Width = *flagWidth
	}
	if *flagHeight != 0 {
		c.Height = *flagHeight
	}

	sess := openSession(cfg, store.NewFileStore(cfg.Store.Path))
	sc, err := sess.SceneAt(c)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		log.Fatal(err)
	}
	switch ext := strings.ToLower(filepath.Ext(*flagOut)); ext {
	case ".svg":
		err = svgrender.Render(f, sc)
	case ".png":
		err = rasterrender.WritePNG(f, sc)
	default:
		err = fmt.Errorf("unknown image format %q", ext)
	}
	if err2 := f.Close(); err == nil {
		err = err2
	}
	if err != nil {
		os.Remove(*flagOut)
		log.Fatal(err)
	}
}

func ticksCmd(args []string) {
	fs := flag.NewFlagSet("ticks", flag.ExitOnError)
	var (
		flagConfig   = fs.String("config", "", "read configuration from `file`")
		flagMode     = fs.String("mode", "amount", "generate a fixed amount of markers or markers at a fixed interval (`amount|interval`)")
		flagAmount   = fs.Int("amount", ticks.DefaultAmount, "number of markers in amount mode")
		flagInterval = fs.Float64("interval", ticks.DefaultStep, "marker spacing in interval mode")
		flagOffset   = fs.Float64("offset", 0, "offset of the first marker from the scale start in interval mode")
	)
	cfg := loadConfig(fs, args, flagConfig)

	p, err := ticks.ParsePolicy(*flagMode, *flagAmount, *flagInterval, *flagOffset)
	if err != nil {
		log.Fatal(err)
	}
	sess := openSession(cfg, store.NewFileStore(cfg.Store.Path))
	if err := sess.SetGenerator(p); err != nil {
		log.Fatal(err)
	}
	out, err := sess.GeneratorOutput()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
}
