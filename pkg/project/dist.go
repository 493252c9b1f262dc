// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/koukyosyumei/pydist/pkg/fsutil"
	"github.com/koukyosyumei/pydist/pkg/python/pip/requirements"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/bdist"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/core_metadata"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/entry_points"
	"github.com/koukyosyumei/pydist/pkg/python/pypa/sdist"
	"github.com/koukyosyumei/pydist/pkg/reproducible"
)

// Sources returns the .py files of every discovered package, named relative
// to the source root (so "src/attacksplitnn/attack/__init__.py" becomes
// "attacksplitnn/attack/__init__.py").
func (proj *Project) Sources() ([]fsutil.FileReference, error) {
	srcDir := filepath.Join(proj.RootDir, proj.Config.SrcDir)
	var ret []fsutil.FileReference
	for _, pkg := range proj.Packages {
		pkgDir := filepath.Join(srcDir, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
		entries, err := os.ReadDir(pkgDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, err
			}
			ret = append(ret, &fsutil.DiskFileReference{
				FileInfo:  info,
				MFullName: path.Join(strings.ReplaceAll(pkg, ".", "/"), entry.Name()),
				DiskPath:  filepath.Join(pkgDir, entry.Name()),
			})
		}
	}
	return ret, nil
}

func (proj *Project) metadata() (core_metadata.Metadata, error) {
	reqs, err := requirements.ParseLines(proj.Requires)
	if err != nil {
		return core_metadata.Metadata{}, fmt.Errorf("%s: %w", proj.Config.Requirements, err)
	}
	requiresDist := make([]string, 0, len(reqs))
	for _, req := range reqs {
		requiresDist = append(requiresDist, req.String())
	}
	return core_metadata.Metadata{
		Name:         proj.Config.Name,
		Version:      proj.Version,
		Summary:      proj.Config.Description,
		HomePage:     proj.Config.URL,
		Author:       proj.Config.Author,
		AuthorEmail:  proj.Config.AuthorEmail,
		License:      proj.Config.License,
		RequiresDist: requiresDist,
	}, nil
}

func (proj *Project) diskFile(relName string) (fsutil.FileReference, error) {
	diskPath := filepath.Join(proj.RootDir, filepath.FromSlash(relName))
	info, err := os.Stat(diskPath)
	if err != nil {
		return nil, err
	}
	return &fsutil.DiskFileReference{
		FileInfo:  info,
		MFullName: relName,
		DiskPath:  diskPath,
	}, nil
}

// SourceDist assembles the project's source distribution: PKG-INFO, the
// project file, the requirements file, and the sources of every discovered
// package laid out under the source root.
func (proj *Project) SourceDist() (*sdist.Dist, error) {
	md, err := proj.metadata()
	if err != nil {
		return nil, err
	}
	pkgInfo, err := md.Render()
	if err != nil {
		return nil, err
	}

	files := []fsutil.FileReference{
		fsutil.NewInMemFile("PKG-INFO", 0o644, reproducible.Now(), pkgInfo),
	}
	for _, relName := range []string{ConfigFile, filepath.ToSlash(proj.Config.Requirements)} {
		file, err := proj.diskFile(relName)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	sources, err := proj.Sources()
	if err != nil {
		return nil, err
	}
	srcPrefix := path.Clean(filepath.ToSlash(proj.Config.SrcDir))
	for _, src := range sources {
		files = append(files, fsutil.WithPrefix(srcPrefix, src))
	}

	return &sdist.Dist{
		Name:    proj.Config.Name,
		Version: proj.Version,
		Files:   files,
	}, nil
}

// Distribution assembles the project's wheel: the package sources at the
// archive root, plus the metadata that the wheel builder turns in to the
// .dist-info directory.
func (proj *Project) Distribution() (*bdist.Distribution, error) {
	md, err := proj.metadata()
	if err != nil {
		return nil, err
	}
	metadata, err := md.Render()
	if err != nil {
		return nil, err
	}

	var entryPoints []byte
	if len(proj.Config.ConsoleScripts) > 0 {
		entryPoints, err = entry_points.Render(proj.Config.ConsoleScripts)
		if err != nil {
			return nil, err
		}
	}

	sources, err := proj.Sources()
	if err != nil {
		return nil, err
	}

	return &bdist.Distribution{
		Name:        proj.Config.Name,
		Version:     proj.Version,
		Generator:   "pydist",
		Metadata:    metadata,
		EntryPoints: entryPoints,
		Files:       sources,
	}, nil
}
