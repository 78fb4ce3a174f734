/*
Ropesh is an interactive shell for editing a text held in a rope.

Usage:

	ropesh [-load file | -html file] [-trace level] [-color=false]

Commands are read line by line from standard input. Type 'help' for a list
of commands.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/rope"
	"github.com/npillmayer/rope/html"
	"github.com/npillmayer/rope/textfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/term"
)

func main() {
	load := flag.String("load", "", "text file to load")
	htmlfile := flag.String("html", "", "HTML file to extract text from")
	tlevel := flag.String("trace", "error", "trace level [debug|info|error]")
	colored := flag.Bool("color", true, "colorize output")
	flag.Parse()

	setupTracing(tracing.TraceLevelFromString(*tlevel))
	color.NoColor = color.NoColor || !*colored

	text, err := initialText(*load, *htmlfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ropesh: %v\n", err)
		os.Exit(1)
	}
	sh := newShell(text, os.Stdout)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		sh.prompt = "rope> "
	}
	if err := sh.run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "ropesh: %v\n", err)
		os.Exit(1)
	}
}

// setupTracing routes the core tracer and all selected tracers to a Go logger.
func setupTracing(level tracing.TraceLevel) {
	tracer := gologadapter.New()
	tracer.SetTraceLevel(level)
	gtrace.CoreTracer = tracer
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return tracer
	}))
}

func initialText(load, htmlfile string) (rope.Rope, error) {
	switch {
	case load != "":
		return loadFile(load)
	case htmlfile != "":
		f, err := os.Open(htmlfile)
		if err != nil {
			return rope.Rope{}, err
		}
		defer f.Close()
		return html.TextFromHTML(f)
	}
	return rope.Rope{}, nil
}

// loadFile loads a text file, reporting progress on stderr.
func loadFile(name string) (rope.Rope, error) {
	loader := textfile.NewLoader()
	defer loader.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if ch, ok := loader.Subscribe(ctx); ok {
		go reportProgress(ch, os.Stderr)
	}
	return loader.Load(ctx, name)
}

func reportProgress(ch <-chan interface{}, w io.Writer) {
	for msg := range ch {
		switch m := msg.(type) {
		case textfile.FragmentLoaded:
			if m.Err != nil {
				fmt.Fprintf(w, "fragment %d: %v\n", m.Index, m.Err)
			}
		case textfile.LoadDone:
			if m.Err == nil {
				fmt.Fprintf(w, "loaded %s: %d bytes, %d characters\n", m.Path, m.Size, m.Runes)
			}
		}
	}
}

// terminalWidth returns the width of the terminal, or def if standard output
// is not a terminal.
func terminalWidth(def int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return def
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
}
