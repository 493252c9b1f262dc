// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package pep508 implements PEP 508 -- Dependency specification for Python
// Software Packages.
//
// Well, enough of PEP 508 to parse the dependency lines that appear in
// requirements files and in core-metadata "Requires-Dist" fields.
// Environment markers are carried through verbatim, not evaluated.
//
// https://www.python.org/dev/peps/pep-0508/
package pep508

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

// A Requirement is a single dependency specification, such as
//
//	requests[security,tests] >= 2.8.1, == 2.8.* ; python_version < "2.7"
//
// or a direct reference, such as
//
//	pip @ https://github.com/pypa/pip/archive/1.3.1.zip
type Requirement struct {
	Name      string
	Extras    []string
	Specifier pep440.Specifier
	URL       string
	Marker    string
}

var reName = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)

// indexUnquoted returns the index of the first sep that is not inside a
// single- or double-quoted string, or -1.  Markers quote their operands, so
// a naive strings.Index would split `python_version < "2.7;x"` in the wrong
// place.
func indexUnquoted(str string, sep rune) int {
	var quote rune
	for i, r := range str {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == sep:
			return i
		}
	}
	return -1
}

// ParseRequirement parses a dependency specification.
func ParseRequirement(str string) (*Requirement, error) {
	var ret Requirement

	rest := strings.TrimSpace(str)
	if rest == "" {
		return nil, fmt.Errorf("pep508.ParseRequirement: empty requirement")
	}

	// environment marker
	if semi := indexUnquoted(rest, ';'); semi >= 0 {
		ret.Marker = strings.TrimSpace(rest[semi+1:])
		rest = strings.TrimSpace(rest[:semi])
	}

	// distribution name
	nameMatch := reName.FindString(rest)
	if nameMatch == "" {
		return nil, fmt.Errorf("pep508.ParseRequirement: invalid distribution name: %q", str)
	}
	ret.Name = nameMatch
	rest = strings.TrimSpace(rest[len(nameMatch):])

	// extras
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return nil, fmt.Errorf("pep508.ParseRequirement: unterminated extras: %q", str)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			extra = strings.TrimSpace(extra)
			if extra == "" {
				continue
			}
			if !reName.MatchString(extra) {
				return nil, fmt.Errorf("pep508.ParseRequirement: invalid extra: %q", extra)
			}
			ret.Extras = append(ret.Extras, extra)
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	// direct reference
	if strings.HasPrefix(rest, "@") {
		ret.URL = strings.TrimSpace(rest[1:])
		if ret.URL == "" {
			return nil, fmt.Errorf("pep508.ParseRequirement: missing URL in direct reference: %q", str)
		}
		return &ret, nil
	}

	// version specifier, optionally parenthesized
	if strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")") {
		rest = strings.TrimSpace(rest[1 : len(rest)-1])
	}
	if rest != "" {
		spec, err := pep440.ParseSpecifier(rest)
		if err != nil {
			return nil, fmt.Errorf("pep508.ParseRequirement: %w", err)
		}
		ret.Specifier = spec
	}

	return &ret, nil
}

// String implements fmt.Stringer.
func (req Requirement) String() string {
	var ret strings.Builder
	ret.WriteString(req.Name)
	if len(req.Extras) > 0 {
		ret.WriteString("[")
		ret.WriteString(strings.Join(req.Extras, ","))
		ret.WriteString("]")
	}
	switch {
	case req.URL != "":
		ret.WriteString(" @ ")
		ret.WriteString(req.URL)
	case len(req.Specifier) > 0:
		ret.WriteString(req.Specifier.String())
	}
	if req.Marker != "" {
		ret.WriteString(" ; ")
		ret.WriteString(req.Marker)
	}
	return ret.String()
}
