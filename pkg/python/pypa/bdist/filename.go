// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package bdist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/koukyosyumei/pydist/pkg/python/pep425"
	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

// FileNameData is the parsed form of a wheel filename:
//
//	{distribution}-{version}(-{build tag})?-{python tag}-{abi tag}-{platform tag}.whl
type FileNameData struct {
	Distribution     string
	Version          pep440.Version
	BuildTag         *BuildTag
	CompatibilityTag pep425.Tag
}

var reFilename = regexp.MustCompile(regexp.MustCompile(`\s+`).ReplaceAllString(`
		^(?P<distribution>[^-]+)
		-(?P<version>[^-]+)
		(?:-(?P<build_n>[0-9]+)(?P<build_l>[^-0-9][^-]*)?)?
		-(?P<python>[^-]+)
		-(?P<abi>[^-]+)
		-(?P<platform>[^-]+)
		\.whl$`, ``))

func ParseFilename(filename string) (*FileNameData, error) {
	match := reFilename.FindStringSubmatch(filename)
	if match == nil {
		return nil, fmt.Errorf("invalid wheel filename: %q", filename)
	}

	var ret FileNameData

	ret.Distribution = match[reFilename.SubexpIndex("distribution")]

	ver, err := pep440.ParseVersion(match[reFilename.SubexpIndex("version")])
	if err != nil {
		return nil, fmt.Errorf("invalid wheel filename: %q: %w", filename, err)
	}
	ret.Version = *ver

	if buildN := match[reFilename.SubexpIndex("build_n")]; buildN != "" {
		n, _ := strconv.Atoi(buildN)
		ret.BuildTag = &BuildTag{
			Int: n,
			Str: match[reFilename.SubexpIndex("build_l")],
		}
	}

	ret.CompatibilityTag = pep425.Tag{
		Python:   match[reFilename.SubexpIndex("python")],
		ABI:      match[reFilename.SubexpIndex("abi")],
		Platform: match[reFilename.SubexpIndex("platform")],
	}

	return &ret, nil
}

// A BuildTag is an optional build number that acts as a tie-breaker between
// wheel files whose names are the same in all other respects.
type BuildTag struct {
	Int int
	Str string
}

func (t BuildTag) String() string {
	return fmt.Sprintf("%d%s", t.Int, t.Str)
}

func (a *BuildTag) Cmp(b *BuildTag) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil && b != nil:
		return -1
	case a != nil && b == nil:
		return 1
	}
	if d := a.Int - b.Int; d != 0 {
		return d
	}
	switch {
	case a.Str < b.Str:
		return -1
	case a.Str > b.Str:
		return 1
	default:
		return 0
	}
}

// GenerateFilename assembles a wheel filename, escaping the components that
// could contain a dash.
func GenerateFilename(data FileNameData) (string, error) {
	var ret strings.Builder
	// In distribution names, any run of "-_." characters is replaced with "_"; this is
	// equivalent to PEP 503 normalization followed by replacing "-" with "_".
	ret.WriteString(regexp.MustCompile("[-_.]+").ReplaceAllLiteralString(data.Distribution, "_"))
	// Normalized PEP 440 version numbers cannot contain "-".
	ver, err := data.Version.Normalize()
	if err != nil {
		return "", err
	}
	ret.WriteString("-")
	ret.WriteString(ver.String())
	if data.BuildTag != nil {
		build := data.BuildTag.String()
		if strings.Contains(build, "-") {
			return "", fmt.Errorf("invalid build tag: contains dash: %q", build)
		}
		ret.WriteString("-")
		ret.WriteString(build)
	}
	compat := data.CompatibilityTag.String()
	if strings.Count(compat, "-") != 2 {
		return "", fmt.Errorf("invalid compatibility tag: %q", compat)
	}
	ret.WriteString("-")
	ret.WriteString(compat)
	ret.WriteString(".whl")
	return ret.String(), nil
}
