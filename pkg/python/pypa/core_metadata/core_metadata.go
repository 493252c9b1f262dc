// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package core_metadata implements the PyPA Core metadata specification; the
// format of PKG-INFO files in sdists and METADATA files in wheels.
//
// https://packaging.python.org/specifications/core-metadata/
package core_metadata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

// Metadata is a metadata-version 2.1 record.  Only the fields that a
// declarative project file can populate are represented.
type Metadata struct {
	Name         string
	Version      pep440.Version
	Summary      string
	HomePage     string
	Author       string
	AuthorEmail  string
	License      string
	RequiresDist []string
}

func writeField(buf *bytes.Buffer, name, value string) {
	if value == "" {
		return
	}
	// continuation lines get RFC 822 folding
	value = strings.ReplaceAll(value, "\n", "\n        ")
	fmt.Fprintf(buf, "%s: %s\n", name, value)
}

// Render serializes the record in the email-header format that the
// specification requires.  Fields appear in a fixed order so that output is
// deterministic.
func (md Metadata) Render() ([]byte, error) {
	if md.Name == "" {
		return nil, fmt.Errorf("core_metadata: a Name is required")
	}
	ver, err := md.Version.Normalize()
	if err != nil {
		return nil, fmt.Errorf("core_metadata: %w", err)
	}

	var buf bytes.Buffer
	writeField(&buf, "Metadata-Version", "2.1")
	writeField(&buf, "Name", md.Name)
	writeField(&buf, "Version", ver.String())
	writeField(&buf, "Summary", md.Summary)
	writeField(&buf, "Home-page", md.HomePage)
	writeField(&buf, "Author", md.Author)
	writeField(&buf, "Author-email", md.AuthorEmail)
	writeField(&buf, "License", md.License)
	for _, req := range md.RequiresDist {
		writeField(&buf, "Requires-Dist", req)
	}
	return buf.Bytes(), nil
}
