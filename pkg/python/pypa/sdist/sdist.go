// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

// Package sdist builds source distributions.
//
// https://packaging.python.org/specifications/source-distribution-format/
package sdist

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"path"
	"regexp"
	"time"

	"github.com/koukyosyumei/pydist/pkg/fsutil"
	"github.com/koukyosyumei/pydist/pkg/python/pep440"
)

// A Dist describes an sdist to be built.
type Dist struct {
	Name    string
	Version pep440.Version

	// Files are the archive members, named relative to the distribution's
	// base directory.
	Files []fsutil.FileReference
}

func (dist *Dist) escapedName() string {
	return regexp.MustCompile("[-_.]+").ReplaceAllLiteralString(dist.Name, "_")
}

// BaseDir returns the name of the single top-level directory that every
// archive member lives under: "{name}-{version}".
func (dist *Dist) BaseDir() string {
	return dist.escapedName() + "-" + dist.Version.String()
}

// Filename returns the sdist's filename: "{name}-{version}.tar.gz".
func (dist *Dist) Filename() string {
	return dist.BaseDir() + ".tar.gz"
}

// Build serializes the sdist to a gzip-compressed tarball.  Members are
// sorted by name, owned by uid/gid 0, and have their timestamps clamped to
// clampTime.
func (dist *Dist) Build(clampTime time.Time) ([]byte, error) {
	files := make([]fsutil.FileReference, len(dist.Files))
	copy(files, dist.Files)
	fsutil.SortFileReferences(files)

	baseDir := dist.BaseDir()

	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzWriter)

	dirHeader := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     baseDir + "/",
		Mode:     0o755,
		ModTime:  clampTime,
	}
	if err := tarWriter.WriteHeader(dirHeader); err != nil {
		return nil, err
	}

	seenDirs := map[string]struct{}{}
	for _, file := range files {
		// parent directories, outermost first
		name := path.Join(baseDir, file.FullName())
		for _, dir := range parentDirs(name) {
			if dir == baseDir {
				continue
			}
			if _, seen := seenDirs[dir]; seen {
				continue
			}
			seenDirs[dir] = struct{}{}
			if err := tarWriter.WriteHeader(&tar.Header{
				Typeflag: tar.TypeDir,
				Name:     dir + "/",
				Mode:     0o755,
				ModTime:  clampTime,
			}); err != nil {
				return nil, err
			}
		}

		modTime := file.ModTime()
		if modTime.After(clampTime) {
			modTime = clampTime
		}
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o644,
			Size:     file.Size(),
			ModTime:  modTime,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return nil, err
		}
		fh, err := file.Open()
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(tarWriter, fh); err != nil {
			_ = fh.Close()
			return nil, err
		}
		if err := fh.Close(); err != nil {
			return nil, err
		}
	}

	if err := tarWriter.Close(); err != nil {
		return nil, err
	}
	if err := gzWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parentDirs(name string) []string {
	var ret []string
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		ret = append(ret, dir)
	}
	// reverse in to outermost-first order
	for i, j := 0, len(ret)-1; i < j; i, j = i+1, j-1 {
		ret[i], ret[j] = ret[j], ret[i]
	}
	return ret
}
