// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package htmlutil has small helpers for walking x/net/html documents.
package htmlutil

import (
	"golang.org/x/net/html"
)

// VisitHTML walks the node tree depth-first, calling `before` on the way down and `after` on the
// way back up.  Either callback may be nil.
func VisitHTML(node *html.Node, before, after func(*html.Node) error) error {
	if before != nil {
		if err := before(node); err != nil {
			return err
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if err := VisitHTML(child, before, after); err != nil {
			return err
		}
	}
	if after != nil {
		if err := after(node); err != nil {
			return err
		}
	}
	return nil
}

// GetAttr returns the value of the named attribute of the node, if present.
func GetAttr(node *html.Node, namespace, name string) (val string, ok bool) {
	if node == nil {
		return "", false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == namespace && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Text returns the concatenation of all text nodes beneath the node.
func Text(node *html.Node) string {
	var ret []byte
	_ = VisitHTML(node, nil, func(child *html.Node) error {
		if child.Type == html.TextNode {
			ret = append(ret, child.Data...)
		}
		return nil
	})
	return string(ret)
}
