// Copyright (C) 2022  Koukyosyumei
//
// SPDX-License-Identifier: MIT

package fsutil

import (
	"archive/tar"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"time"
)

// InMemFileReference is a FileReference whose content lives in memory.
type InMemFileReference struct {
	fs.FileInfo
	MFullName string
	MContent  []byte
}

func (fr *InMemFileReference) FullName() string { return fr.MFullName }
func (fr *InMemFileReference) Name() string     { return path.Base(fr.MFullName) }
func (fr *InMemFileReference) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(fr.MContent)), nil
}

var _ FileReference = (*InMemFileReference)(nil)

// NewInMemFile builds an InMemFileReference for a regular file.
func NewInMemFile(fullName string, mode fs.FileMode, modTime time.Time, content []byte) *InMemFileReference {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     fullName,
		Mode:     int64(mode.Perm()),
		Size:     int64(len(content)),
		ModTime:  modTime,
	}
	return &InMemFileReference{
		FileInfo:  header.FileInfo(),
		MFullName: fullName,
		MContent:  content,
	}
}

// DiskFileReference is a FileReference whose content lives on disk; the file is opened on each
// access.
type DiskFileReference struct {
	fs.FileInfo
	MFullName string
	DiskPath  string
}

func (fr *DiskFileReference) FullName() string { return fr.MFullName }
func (fr *DiskFileReference) Name() string     { return path.Base(fr.MFullName) }
func (fr *DiskFileReference) Open() (io.ReadCloser, error) {
	return os.Open(fr.DiskPath)
}

var _ FileReference = (*DiskFileReference)(nil)

type prefixedFileReference struct {
	FileReference
	prefix string
}

func (fr prefixedFileReference) FullName() string {
	return path.Join(fr.prefix, fr.FileReference.FullName())
}

// WithPrefix returns a view of `file` relocated under the directory `prefix`.
func WithPrefix(prefix string, file FileReference) FileReference {
	return prefixedFileReference{
		FileReference: file,
		prefix:        prefix,
	}
}
