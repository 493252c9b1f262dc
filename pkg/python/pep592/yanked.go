// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package pep592 implements PEP 592 -- Adding "Yank" Support to the Simple API.
//
// https://www.python.org/dev/peps/pep-0592/
package pep592

import (
	"github.com/koukyosyumei/pydist/pkg/python/pep440"
	"github.com/koukyosyumei/pydist/pkg/python/pep503"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/bdist"
)

func IsYanked(l pep503.FileLink) bool {
	_, yanked := l.DataAttrs["data-yanked"]
	return yanked
}

type excludeYanked struct {
	yankedVersions map[string]struct{}
}

// ExcludeYanked returns an ExclusionBehavior that disallows the versions that
// the given file links mark as yanked; "installers MUST ignore yanked
// releases, if the selection constraints can be satisfied with a non-yanked
// version".
func ExcludeYanked(links []pep503.FileLink) pep440.ExclusionBehavior {
	ret := excludeYanked{
		yankedVersions: make(map[string]struct{}),
	}
	for _, link := range links {
		if IsYanked(link) {
			fileInfo, err := bdist.ParseFilename(link.Text)
			if err != nil {
				continue
			}
			ret.yankedVersions[fileInfo.Version.String()] = struct{}{}
		}
	}
	return ret
}

func (e excludeYanked) Allow(v pep440.Version) bool {
	_, yanked := e.yankedVersions[v.String()]
	return !yanked
}
