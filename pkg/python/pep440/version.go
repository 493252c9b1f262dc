// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package pep440 implements PEP 440 -- Version Identification and Dependency
// Specification.
//
// https://peps.python.org/pep-0440/
package pep440

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/intstr"
)

type Version = LocalVersion

// A PublicVersion is a PEP 440 public version identifier; the canonical form
// is
//
//	[N!]N(.N)*[{a|b|rc}N][.postN][.devN]
type PublicVersion struct {
	// Epoch segment: ``N!``
	Epoch int
	// Release segment: ``N(.N)*``
	Release []int
	// Pre-release segment: ``{a|b|rc}N``
	Pre *PreRelease
	// Post-release segment: ``.postN``
	Post *int
	// Development release segment: ``.devN``
	Dev *int
}

type PreRelease struct {
	L string
	N int
}

// A LocalVersion is a public version identifier optionally followed by
// ``+<local version label>``; the label is split on ``.`` into segments, each
// of which is either numeric or alphanumeric.
type LocalVersion struct {
	PublicVersion
	Local []intstr.IntOrString
}

// GoString implements fmt.GoStringer.
func (ver PublicVersion) GoString() string {
	pre := "nil"
	if ver.Pre != nil {
		pre = fmt.Sprintf("&%#v", *ver.Pre)
	}
	post := "nil"
	if ver.Post != nil {
		post = fmt.Sprintf("intPtr(%#v)", *ver.Post)
	}
	dev := "nil"
	if ver.Dev != nil {
		dev = fmt.Sprintf("intPtr(%#v)", *ver.Dev)
	}
	return fmt.Sprintf("pep440.PublicVersion{Epoch:%d, Release:%#v, Pre:%s, Post:%s, Dev:%s}",
		ver.Epoch, ver.Release, pre, post, dev)
}

// GoString implements fmt.GoStringer.
func (ver LocalVersion) GoString() string {
	return fmt.Sprintf("pep440.LocalVersion{PublicVersion:%#v, Local:%#v}",
		ver.PublicVersion, ver.Local)
}

func (ver PublicVersion) writeTo(ret *strings.Builder) {
	if ver.Epoch > 0 {
		fmt.Fprintf(ret, "%d!", ver.Epoch)
	}
	if len(ver.Release) == 0 {
		panic("invalid version: no release segments")
	}
	fmt.Fprintf(ret, "%d", ver.Release[0])
	for _, segment := range ver.Release[1:] {
		fmt.Fprintf(ret, ".%d", segment)
	}
	if ver.Pre != nil {
		fmt.Fprintf(ret, "%s%d", ver.Pre.L, ver.Pre.N)
	}
	if ver.Post != nil {
		fmt.Fprintf(ret, ".post%d", *ver.Post)
	}
	if ver.Dev != nil {
		fmt.Fprintf(ret, ".dev%d", *ver.Dev)
	}
}

// String implements fmt.Stringer.  String does not perform any normalization.
func (ver PublicVersion) String() string {
	var ret strings.Builder
	ver.writeTo(&ret)
	return ret.String()
}

// String implements fmt.Stringer.  String does not perform any normalization.
func (ver LocalVersion) String() string {
	var ret strings.Builder
	ver.PublicVersion.writeTo(&ret)
	sep := "+"
	for _, local := range ver.Local {
		ret.WriteString(sep)
		ret.WriteString(local.String())
		sep = "."
	}
	return ret.String()
}

// IsFinal reports whether the version is a "final release"; one with no
// pre-release, post-release, or developmental release segment.
func (ver PublicVersion) IsFinal() bool {
	return ver.Pre == nil && ver.Post == nil && ver.Dev == nil
}

func (ver LocalVersion) IsFinal() bool {
	return ver.PublicVersion.IsFinal() && len(ver.Local) == 0
}

// IsPreRelease reports whether the version is a pre-release or a
// developmental release; the kinds that version specifiers implicitly
// exclude.
func (ver PublicVersion) IsPreRelease() bool {
	return ver.Pre != nil || ver.Dev != nil
}

func (ver PublicVersion) releaseSegment(n int) int {
	if n < len(ver.Release) {
		return ver.Release[n]
	}
	return 0
}

func (ver PublicVersion) Major() int { return ver.releaseSegment(0) }
func (ver PublicVersion) Minor() int { return ver.releaseSegment(1) }
func (ver PublicVersion) Micro() int { return ver.releaseSegment(2) }

// Normalize re-parses the version's string form, applying the normalization
// rules that parsing performs.
func (ver PublicVersion) Normalize() (*PublicVersion, error) {
	n, err := ParseVersion(ver.String())
	if err != nil {
		return nil, err
	}
	return &n.PublicVersion, nil
}

func (ver LocalVersion) Normalize() (*LocalVersion, error) {
	n, err := ParseVersion(ver.String())
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Ordering ///////////////////////////////////////////////////////////////////

func cmpEpoch(a, b PublicVersion) int {
	return a.Epoch - b.Epoch
}

// The shorter release segment is padded with zeros as necessary, so that
// "1.1" and "1.1.0" compare as equal.
func cmpRelease(a, b PublicVersion) int {
	for i := 0; i < len(a.Release) || i < len(b.Release); i++ {
		if diff := a.releaseSegment(i) - b.releaseSegment(i); diff != 0 {
			return diff
		}
	}
	return 0
}

//nolint:gochecknoglobals // Would be 'const'.
var preReleaseOrder = map[string]int{
	"a":     -3,
	"alpha": -3,

	"b":    -2,
	"beta": -2,

	"rc":      -1,
	"c":       -1,
	"pre":     -1,
	"preview": -1,

	// absent: 0,
}

// Suffixes within a release sort as: .devN, aN, bN, rcN, <no suffix>, .postN.
// A bare ".devN" (no pre- or post-release segment) sorts ahead of every
// pre-release phase.
func cmpPreRelease(a, b PublicVersion) int {
	var aL, aN, bL, bN int
	var ok bool
	if a.Pre != nil {
		aL, ok = preReleaseOrder[a.Pre.L]
		if !ok {
			panic(fmt.Errorf("invalid pre-release string: %q", a.Pre.L))
		}
		aN = a.Pre.N
	} else if a.Dev != nil && a.Post == nil {
		aL = -4
	}
	if b.Pre != nil {
		bL, ok = preReleaseOrder[b.Pre.L]
		if !ok {
			panic(fmt.Errorf("invalid pre-release string: %q", b.Pre.L))
		}
		bN = b.Pre.N
	} else if b.Dev != nil && b.Post == nil {
		bL = -4
	}
	if aL != bL {
		return aL - bL
	}
	return aN - bN
}

func cmpPostRelease(a, b PublicVersion) int {
	aPost := -1
	if a.Post != nil {
		aPost = *a.Post
	}
	bPost := -1
	if b.Post != nil {
		bPost = *b.Post
	}
	return aPost - bPost
}

func cmpDevRelease(a, b PublicVersion) int {
	switch {
	case a.Dev == nil && b.Dev == nil:
		return 0
	case a.Dev == nil && b.Dev != nil:
		return 1
	case a.Dev != nil && b.Dev == nil:
		return -1
	default:
		return (*a.Dev) - (*b.Dev)
	}
}

func cmpLocalSegment(a, b *intstr.IntOrString) int {
	// handle one or both of them being nil
	switch {
	case a == nil && b == nil:
		panic("should not happen: cmpLocal shouldn't have bothered calling this")
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	// a numeric segment always compares as greater than an alphanumeric one
	switch {
	case a.Type == intstr.Int && b.Type == intstr.Int:
		return int(a.IntVal - b.IntVal)
	case a.Type == intstr.String && b.Type == intstr.String:
		switch {
		case a.StrVal < b.StrVal:
			return -1
		case a.StrVal > b.StrVal:
			return 1
		}
		return 0
	case a.Type == intstr.Int && b.Type == intstr.String:
		return 1
	case a.Type == intstr.String && b.Type == intstr.Int:
		return -1
	default:
		panic("should not happen: invalid intstr.IntOrString")
	}
}

func cmpLocal(a, b LocalVersion) int {
	for i := 0; i < len(a.Local) || i < len(b.Local); i++ {
		var aSeg, bSeg *intstr.IntOrString
		if i < len(a.Local) {
			aSeg = &(a.Local[i])
		}
		if i < len(b.Local) {
			bSeg = &(b.Local[i])
		}
		if d := cmpLocalSegment(aSeg, bSeg); d != 0 {
			return d
		}
	}
	return 0
}

// Cmp returns a number < 0 if version 'a' is less than version 'b', > 0 if 'a' is greater than 'b',
// or 0 if they are equal.  This is similar to the C-language strcmp.  You may think of this as
// returning the result of arithmetic subtraction "a-b"; though only the sign is defined; the
// magnitude may be anything.
func (a PublicVersion) Cmp(b PublicVersion) int {
	if d := cmpEpoch(a, b); d != 0 {
		return d
	}
	if d := cmpRelease(a, b); d != 0 {
		return d
	}
	if d := cmpPreRelease(a, b); d != 0 {
		return d
	}
	if d := cmpPostRelease(a, b); d != 0 {
		return d
	}
	return cmpDevRelease(a, b)
}

// Cmp returns a number < 0 if version 'a' is less than version 'b', > 0 if 'a' is greater than 'b',
// or 0 if they are equal.  A local version sorts as greater than the same version without a local
// version label.
func (a LocalVersion) Cmp(b LocalVersion) int {
	if d := a.PublicVersion.Cmp(b.PublicVersion); d != 0 {
		return d
	}
	return cmpLocal(a, b)
}

// Parsing ////////////////////////////////////////////////////////////////////

// reVersion is the permissive VERSION_PATTERN regular expression from PEP 440
// Appendix B (as defined by the github.com/pypa/packaging project).
//
//nolint:lll // long regexp from the source specification
var reVersion = regexp.MustCompile(`(?i)^\s*v?(?:(?:(?P<epoch>[0-9]+)!)?(?P<release>[0-9]+(?:\.[0-9]+)*)(?P<pre>[-_\.]?(?P<pre_l>(a|b|c|rc|alpha|beta|pre|preview))[-_\.]?(?P<pre_n>[0-9]+)?)?(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_\.]?(?P<post_l>post|rev|r)[-_\.]?(?P<post_n2>[0-9]+)?))?(?P<dev>[-_\.]?(?P<dev_l>dev)[-_\.]?(?P<dev_n>[0-9]+)?)?)(?:\+(?P<local>[a-z0-9]+(?:[-_\.][a-z0-9]+)*))?\s*$`)

// ParseVersion parses a string to a Version object, performing the
// normalizations that PEP 440 requires of installation tools: case folding,
// alternate pre/post-release spellings, alternate separators, implicit
// numerals, a preceding 'v', and surrounding whitespace.
func ParseVersion(str string) (*Version, error) {
	ver, err := parseVersion(str)
	if err != nil {
		return nil, fmt.Errorf("pep440.ParseVersion: %w", err)
	}
	return ver, nil
}

func parseVersion(str string) (*Version, error) {
	match := reVersion.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("invalid version: %q", str)
	}

	var ver Version
	var err error

	if epoch := match[reVersion.SubexpIndex("epoch")]; epoch != "" {
		ver.Epoch, err = strconv.Atoi(epoch)
		if err != nil {
			return nil, err
		}
	}

	for _, segStr := range strings.Split(match[reVersion.SubexpIndex("release")], ".") {
		segInt, err := strconv.Atoi(segStr)
		if err != nil {
			return nil, err
		}
		ver.Release = append(ver.Release, segInt)
	}

	type letterNumber struct {
		L string
		N int
	}

	parseLetterNumber := func(letter, number string, canonicalLetters map[string][]string) (*letterNumber, error) {
		if letter == "" && number == "" {
			//nolint:nilnil // absent segment
			return nil, nil
		}
		letter = strings.ToLower(letter)
		if letter != "" && number == "" {
			number = "0"
		}
		var ret letterNumber

		if _, ok := canonicalLetters[letter]; ok {
			ret.L = letter
		} else {
			found := false
		outer:
			for canonical, others := range canonicalLetters {
				for _, other := range others {
					if letter == other {
						ret.L = canonical
						found = true
						break outer
					}
				}
			}
			if !found {
				return nil, fmt.Errorf("invalid string-part: %q", letter)
			}
		}

		if number != "" {
			ret.N, err = strconv.Atoi(number)
			if err != nil {
				return nil, err
			}
		}
		return &ret, nil
	}

	pre, err := parseLetterNumber(
		match[reVersion.SubexpIndex("pre_l")],
		match[reVersion.SubexpIndex("pre_n")],
		map[string][]string{
			"a":  {"alpha"},
			"b":  {"beta"},
			"rc": {"c", "pre", "preview"},
		})
	if err != nil {
		return nil, fmt.Errorf("pre-release: %w", err)
	}
	if pre != nil {
		ver.Pre = &PreRelease{
			L: pre.L,
			N: pre.N,
		}
	}

	post, err := parseLetterNumber(
		match[reVersion.SubexpIndex("post_l")],
		match[reVersion.SubexpIndex("post_n1")]+match[reVersion.SubexpIndex("post_n2")],
		map[string][]string{
			"post": {"", "rev", "r"},
		})
	if err != nil {
		return nil, fmt.Errorf("post-release: %w", err)
	}
	if post != nil {
		ver.Post = &post.N
	}

	dev, err := parseLetterNumber(
		match[reVersion.SubexpIndex("dev_l")],
		match[reVersion.SubexpIndex("dev_n")],
		map[string][]string{
			"dev": nil,
		})
	if err != nil {
		return nil, fmt.Errorf("dev: %w", err)
	}
	if dev != nil {
		ver.Dev = &dev.N
	}

	localParts := strings.FieldsFunc(match[reVersion.SubexpIndex("local")], func(r rune) bool {
		return strings.ContainsRune("-_.", r)
	})
	for _, part := range localParts {
		ver.Local = append(ver.Local, intstr.Parse(strings.ToLower(part)))
	}

	return &ver, nil
}
