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

func writeProject(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.ConfigFile), []byte(config), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"),
		[]byte("numpy==1.21.0\ntorch>=1.9\n\nscikit-learn\n"), 0o644))
	writeTree(t, filepath.Join(dir, "src"),
		"attacksplitnn/__init__.py",
		"attacksplitnn/splitnn.py",
		"attacksplitnn/attack/__init__.py")
	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, `
name: attacksplitnn
version: "0.1.0"
description: Attack and defense methods for SplitNN
author: Koukyosyumei
license: MIT
url: https://github.com/Koukyosyumei/AttackSplitNN
console_scripts:
  attacksplitnn: attacksplitnn.cli:main
`)
	proj, err := project.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, proj.RootDir)
	assert.Equal(t, "attacksplitnn", proj.Config.Name)
	assert.Equal(t, "0.1.0", proj.Version.String())
	assert.Equal(t, "src", proj.Config.SrcDir)
	assert.Equal(t, "requirements.txt", proj.Config.Requirements)
	assert.Equal(t, []string{"numpy==1.21.0", "torch>=1.9", "", "scikit-learn"}, proj.Requires)
	assert.Equal(t, []string{"attacksplitnn", "attacksplitnn.attack"}, proj.Packages)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	testcases := map[string]struct {
		Config string
		ErrHas string
	}{
		"unknown-field": {
			Config: "name: mytool\nversion: \"1.0\"\npackages: [mypkg]\n",
			ErrHas: "packages",
		},
		"missing-name": {
			Config: "version: \"1.0\"\n",
			ErrHas: "invalid project name",
		},
		"bad-name": {
			Config: "name: \"my tool\"\nversion: \"1.0\"\n",
			ErrHas: "invalid project name",
		},
		"bad-version": {
			Config: "name: mytool\nversion: bogus\n",
			ErrHas: "invalid version",
		},
		"bad-script": {
			Config: "name: mytool\nversion: \"1.0\"\nconsole_scripts:\n  mytool: \"main()\"\n",
			ErrHas: "invalid object reference",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			dir := writeProject(t, tc.Config)
			_, err := project.Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.ErrHas)
		})
	}
}

func TestLoadMissingConfig(t *testing.T) {
	t.Parallel()
	_, err := project.Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMissingRequirements(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "name: mytool\nversion: \"1.0\"\n")
	require.NoError(t, os.Remove(filepath.Join(dir, "requirements.txt")))

	_, err := project.Load(dir)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadCustomLayout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, project.ConfigFile), []byte(`
name: mytool
version: "1.0"
src_dir: lib
requirements: deps.txt
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deps.txt"), nil, 0o644))
	writeTree(t, filepath.Join(dir, "lib"), "mytool/__init__.py")

	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{}, proj.Requires)
	assert.Equal(t, []string{"mytool"}, proj.Packages)
}
