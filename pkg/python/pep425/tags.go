// Package pep425 implements PEP 425 -- Compatibility Tags for Built Distributions.
//
// https://www.python.org/dev/peps/pep-0425/
package pep425

import (
	"fmt"
	"strings"
)

type Tag struct {
	Python   string
	ABI      string
	Platform string
}

// ParseTag parses a "{python}-{abi}-{platform}" tag string, as it appears in
// a wheel filename.
func ParseTag(str string) (*Tag, error) {
	parts := strings.Split(str, "-")
	if len(parts) != 3 {
		return nil, fmt.Errorf("pep425.ParseTag: invalid tag: %q", str)
	}
	return &Tag{
		Python:   parts[0],
		ABI:      parts[1],
		Platform: parts[2],
	}, nil
}

// Decompress expands a compressed tag set like "py2.py3-none-any" into the
// individual tags that it names.
func (t Tag) Decompress() []Tag {
	var ret []Tag
	for _, x := range strings.Split(t.Python, ".") {
		for _, y := range strings.Split(t.ABI, ".") {
			for _, z := range strings.Split(t.Platform, ".") {
				ret = append(ret, Tag{x, y, z})
			}
		}
	}
	return ret
}

func (t Tag) String() string {
	return t.Python + "-" + t.ABI + "-" + t.Platform
}

// Intersect returns whether any tag in tag-list 'a' matches any tag in tag-list 'b'; considering
// compressed tag sets.
func Intersect(a, b []Tag) bool {
	for _, a1 := range a {
		for _, a2 := range a1.Decompress() {
			for _, b1 := range b {
				for _, b2 := range b1.Decompress() {
					if a2 == b2 {
						return true
					}
				}
			}
		}
	}
	return false
}
