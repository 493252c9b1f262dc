// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindPackages discovers the importable packages beneath the directory
// `where`, the way setuptools' find_packages() does: a directory is a package
// if it contains an __init__.py file, and it is only reported if every
// ancestor directory up to (but not including) `where` is itself a package.
// The result is the packages' dotted names, sorted.
func FindPackages(where string) ([]string, error) {
	var packages []string
	err := filepath.WalkDir(where, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() || p == where {
			return nil
		}
		if _, err := os.Stat(filepath.Join(p, "__init__.py")); err != nil {
			if os.IsNotExist(err) {
				// not a package; nothing beneath it can be one either
				return filepath.SkipDir
			}
			return err
		}
		rel, err := filepath.Rel(where, p)
		if err != nil {
			return err
		}
		packages = append(packages, strings.ReplaceAll(rel, string(filepath.Separator), "."))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(packages)
	return packages, nil
}
