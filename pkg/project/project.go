// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package project loads a Python project described by a declarative
// pydist.yml file, and resolves it in to the metadata and file sets that the
// distribution builders consume.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/koukyosyumei/pydist/pkg/python/pep440"
	"github.com/koukyosyumei/pydist/pkg/python/pip/requirements"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/entry_points"
)

// ConfigFile is the name of the project file, relative to the project root.
const ConfigFile = "pydist.yml"

// Config is the static part of a project description; the content of
// pydist.yml.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	License     string `json:"license,omitempty"`
	URL         string `json:"url,omitempty"`

	// SrcDir is the source root that packages are discovered under;
	// defaults to "src".
	SrcDir string `json:"src_dir,omitempty"`

	// Requirements is the requirements file that install-time dependencies
	// are read from; defaults to "requirements.txt".
	Requirements string `json:"requirements,omitempty"`

	ConsoleScripts map[string]string `json:"console_scripts,omitempty"`
}

// A Project is a loaded and validated project: the static config plus
// everything that is resolved from the project directory at load time.
type Project struct {
	RootDir string
	Config  Config

	// Version is Config.Version, parsed.
	Version pep440.Version

	// Requires are the raw lines of the requirements file, in file order.
	Requires []string

	// Packages are the dotted names of the packages discovered under
	// SrcDir, sorted.
	Packages []string
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, char := range name {
		if !(('a' <= char && char <= 'z') ||
			('A' <= char && char <= 'Z') ||
			('0' <= char && char <= '9') ||
			char == '.' ||
			char == '-' ||
			char == '_') {
			return false
		}
	}
	return true
}

// Load reads rootDir's pydist.yml, applies defaults, validates it, reads the
// requirements file, and discovers packages.
func Load(rootDir string) (*Project, error) {
	configBytes, err := os.ReadFile(filepath.Join(rootDir, ConfigFile))
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.UnmarshalStrict(configBytes, &config); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	if config.SrcDir == "" {
		config.SrcDir = "src"
	}
	if config.Requirements == "" {
		config.Requirements = requirements.DefaultFile
	}

	if !validName(config.Name) {
		return nil, fmt.Errorf("%s: invalid project name: %q", ConfigFile, config.Name)
	}
	version, err := pep440.ParseVersion(config.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFile, err)
	}
	if err := entry_points.ValidateScripts(config.ConsoleScripts); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFile, err)
	}

	requires, err := requirements.ReadFile(filepath.Join(rootDir, config.Requirements))
	if err != nil {
		return nil, err
	}

	packages, err := FindPackages(filepath.Join(rootDir, config.SrcDir))
	if err != nil {
		return nil, err
	}

	return &Project{
		RootDir:  rootDir,
		Config:   config,
		Version:  *version,
		Requires: requires,
		Packages: packages,
	}, nil
}
