// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package requirements reads pip requirements files.
//
// https://pip.pypa.io/en/stable/reference/requirements-file-format/
package requirements

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/koukyosyumei/pydist/pkg/python/pep508"
)

// DefaultFile is the conventional requirements file name, relative to the
// project root.
var DefaultFile = filepath.Join(".", "requirements.txt") //nolint:gochecknoglobals // Would be 'const'.

// ReadFile reads the named requirements file and returns its lines, in file
// order.  Each line has only its trailing newline removed; any other leading
// or trailing whitespace is preserved, as are blank lines, so that the result
// can round-trip back to the file content.
//
// An empty file yields an empty (but non-nil) slice.  Errors opening or
// reading the file are returned as-is.
func ReadFile(filename string) (lines []string, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	lines = []string{}
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line != "" {
					lines = append(lines, line)
				}
				break
			}
			return nil, err
		}
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	return lines, nil
}

// ParseLines parses the lines of a requirements file (as returned by
// ReadFile) into dependency specifications, skipping blank lines and comment
// lines.
func ParseLines(lines []string) ([]pep508.Requirement, error) {
	ret := make([]pep508.Requirement, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := pep508.ParseRequirement(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		ret = append(ret, *req)
	}
	return ret, nil
}
