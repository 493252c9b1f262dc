// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koukyosyumei/pydist/pkg/project"
)

// writeTree creates the named files (with empty content) under dir; a name
// ending in "/" creates a bare directory.
func writeTree(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		fullName := filepath.Join(dir, filepath.FromSlash(name))
		if len(name) > 0 && name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(fullName, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(fullName), 0o755))
		require.NoError(t, os.WriteFile(fullName, nil, 0o644))
	}
}

func TestFindPackages(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		InFiles []string
		Out     []string
	}{
		"flat": {
			InFiles: []string{
				"attacksplitnn/__init__.py",
				"attacksplitnn/splitnn.py",
			},
			Out: []string{"attacksplitnn"},
		},
		"nested": {
			InFiles: []string{
				"attacksplitnn/__init__.py",
				"attacksplitnn/attack/__init__.py",
				"attacksplitnn/attack/intermidiate_level_attack.py",
				"attacksplitnn/defense/__init__.py",
			},
			Out: []string{
				"attacksplitnn",
				"attacksplitnn.attack",
				"attacksplitnn.defense",
			},
		},
		"non-package-dir-skipped": {
			InFiles: []string{
				"mypkg/__init__.py",
				"notapkg/module.py",
			},
			Out: []string{"mypkg"},
		},
		"non-package-prunes-subtree": {
			InFiles: []string{
				"mypkg/__init__.py",
				"notapkg/sub/__init__.py",
			},
			Out: []string{"mypkg"},
		},
		"empty": {
			InFiles: []string{"empty/"},
			Out:     nil,
		},
		"stray-files-ignored": {
			InFiles: []string{
				"README.md",
				"mypkg/__init__.py",
			},
			Out: []string{"mypkg"},
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeTree(t, dir, tc.InFiles...)

			packages, err := project.FindPackages(dir)
			require.NoError(t, err)
			assert.Equal(t, tc.Out, packages)
		})
	}
}

func TestFindPackagesMissingDir(t *testing.T) {
	t.Parallel()
	_, err := project.FindPackages(filepath.Join(t.TempDir(), "src"))
	assert.Error(t, err)
}
