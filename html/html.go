/*
Package html creates ropes from the textual content of HTML documents.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package html

import (
	"io"

	"github.com/npillmayer/rope"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}

// InnerText creates a text rope for the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents). Content of script and style
// elements is skipped, a <br> element produces a newline.
func InnerText(n *html.Node) (rope.Rope, error) {
	if n == nil {
		return rope.Rope{}, rope.ErrIllegalArguments
	}
	b := rope.NewBuilder()
	if err := collectText(n, b); err != nil {
		return rope.Rope{}, err
	}
	return b.Rope(), nil
}

func collectText(n *html.Node, b *rope.Builder) error {
	switch n.Type {
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template:
			tracer().Debugf("skipping <%s>", n.Data)
			return nil
		case atom.Br:
			return b.AppendString("\n")
		}
	case html.TextNode:
		if err := b.AppendString(n.Data); err != nil {
			return err
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectText(c, b); err != nil {
			return err
		}
	}
	return nil
}

// TextFromHTML creates a rope from the textual content of an HTML fragment.
// It does no interpretation of layout and styling, but extracts the pure text.
func TextFromHTML(input io.Reader) (rope.Rope, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return rope.Rope{}, err
	}
	b := rope.NewBuilder()
	for _, n := range nodes {
		if err := collectText(n, b); err != nil {
			return rope.Rope{}, err
		}
	}
	return b.Rope(), nil
}
